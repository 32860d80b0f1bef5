package revenue

import "errors"

// Typed failures surfaced by the revenue engine. Handlers map these onto
// the response codes in internal/constant.
var (
	ErrValidation         = errors.New("revenue: invalid rule set")
	ErrUnknownModelType   = errors.New("revenue: unknown model type")
	ErrInvalidAmount      = errors.New("revenue: invalid gross amount")
	ErrDuplicateEntry     = errors.New("revenue: duplicate ledger entry")
	ErrSettlementConflict = errors.New("revenue: settlement write conflict")
	ErrDriftDetected      = errors.New("revenue: stats drift detected")
)
