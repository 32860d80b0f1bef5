package logger

import "github.com/sirupsen/logrus"

// Default to the standard logger so code paths hit before Init (and tests)
// still log somewhere sensible.
var (
	Revenue = logrus.StandardLogger()
	Portal  = logrus.StandardLogger()
)

func Init() {
	Revenue = NewLogger("revenue")
	Portal = NewLogger("portal")
}
