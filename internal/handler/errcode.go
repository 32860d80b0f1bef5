package handler

import (
	"errors"

	"droppoint-partner-api/internal/constant"
	"droppoint-partner-api/internal/revenue"
	"droppoint-partner-api/internal/service"
)

// errCode maps typed engine and auth failures to response codes. Anything
// untyped is an internal error; the message never leaks to the client.
func errCode(err error) int {
	switch {
	case errors.Is(err, revenue.ErrValidation):
		return constant.CodeRuleValidation
	case errors.Is(err, revenue.ErrUnknownModelType):
		return constant.CodeUnknownModelType
	case errors.Is(err, revenue.ErrInvalidAmount):
		return constant.CodeInvalidAmount
	case errors.Is(err, revenue.ErrDuplicateEntry):
		return constant.CodeDuplicateEntry
	case errors.Is(err, revenue.ErrSettlementConflict):
		return constant.CodeSettlementConflict
	case errors.Is(err, revenue.ErrDriftDetected):
		return constant.CodeDriftDetected
	case errors.Is(err, service.ErrNothingDue):
		return constant.CodeNothingDue
	case errors.Is(err, service.ErrNotOnboarded):
		return constant.CodePartnerNotOnboard
	case errors.Is(err, service.ErrNotApproved):
		return constant.CodePartnerNotApproved
	case errors.Is(err, service.ErrDisabled):
		return constant.CodePartnerDisabled
	case errors.Is(err, service.ErrAuthFailed):
		return constant.CodeApiKeyInvalid
	default:
		return constant.CodeInternalError
	}
}
