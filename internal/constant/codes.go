package constant

// System codes (0 / 1xxx)
const (
	CodeSuccess       = 0
	CodeBadRequest    = 1000
	CodeUnauthorized  = 1001
	CodeForbidden     = 1003
	CodeNotFound      = 1004
	CodeInternalError = 1500
)

// Partner codes (2xxx)
const (
	CodePartnerNotFound    = 2000
	CodePartnerNotApproved = 2001
	CodePartnerDisabled    = 2002
	CodePartnerNotOnboard  = 2003
	CodeApiKeyInvalid      = 2004
)

// Revenue engine codes (3xxx)
const (
	CodeRuleValidation     = 3000
	CodeUnknownModelType   = 3001
	CodeInvalidAmount      = 3002
	CodeDuplicateEntry     = 3003
	CodeSettlementConflict = 3004
	CodeDriftDetected      = 3005
	CodeNothingDue         = 3006
)

// Portal codes (4xxx)
const (
	CodeTicketInvalid      = 4000
	CodeHostingDuplicate   = 4100
	CodeHostingInvalid     = 4101
)

var ErrorMessages = map[int]string{
	CodeSuccess:       "success",
	CodeBadRequest:    "bad request",
	CodeUnauthorized:  "unauthorized",
	CodeForbidden:     "forbidden",
	CodeNotFound:      "not found",
	CodeInternalError: "internal error",

	CodePartnerNotFound:    "partner not found",
	CodePartnerNotApproved: "account pending approval",
	CodePartnerDisabled:    "account disabled, contact support",
	CodePartnerNotOnboard:  "account not onboarded, request partner access",
	CodeApiKeyInvalid:      "invalid api key",

	CodeRuleValidation:     "revenue rule set failed validation",
	CodeUnknownModelType:   "unknown revenue model type",
	CodeInvalidAmount:      "invalid gross amount",
	CodeDuplicateEntry:     "ledger entry already exists for parcel",
	CodeSettlementConflict: "settlement conflict, retry later",
	CodeDriftDetected:      "stats drift detected, recompute triggered",
	CodeNothingDue:         "no ledger entries due for payout",

	CodeTicketInvalid:    "title and description required",
	CodeHostingDuplicate: "a pending request already exists for this email",
	CodeHostingInvalid:   "all fields are required",
}
