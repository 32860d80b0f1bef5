package revenue

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type ModelType string

const (
	ModelFullPartnerProfit ModelType = "full_partner_profit"
	ModelRevenueShare      ModelType = "revenue_share"
	ModelFranchise         ModelType = "franchise"
	ModelFixedRent         ModelType = "fixed_rent"
	ModelHybrid            ModelType = "hybrid"
	ModelCustom            ModelType = "custom"
)

func (m ModelType) Known() bool {
	switch m {
	case ModelFullPartnerProfit, ModelRevenueShare, ModelFranchise,
		ModelFixedRent, ModelHybrid, ModelCustom:
		return true
	}
	return false
}

// Slab is one volume tier of a custom split: revenue inside the band ending
// at Upto earns the partner PartnerPercent.
type Slab struct {
	Upto           decimal.Decimal `json:"upto"`
	PartnerPercent decimal.Decimal `json:"partnerPercent"`
}

// RuleSet describes how gross parcel revenue splits between partner and
// platform for one partner. Stored as a JSON column on the partner revenue
// config and snapshotted verbatim into every ledger entry.
type RuleSet struct {
	ModelType ModelType `json:"modelType"`

	PartnerSharePercent  decimal.Decimal `json:"partnerSharePercent"`
	PlatformSharePercent decimal.Decimal `json:"platformSharePercent"`

	FixedMonthlyRent decimal.Decimal `json:"fixedMonthlyRent"`
	MinGuarantee     decimal.Decimal `json:"minGuarantee"`

	PerParcelRate decimal.Decimal `json:"perParcelRate"`
	PerOpenRate   decimal.Decimal `json:"perOpenRate"`

	// PlatformFlatFee is the flat per-parcel cut the platform keeps under
	// full_partner_profit. Zero means the partner keeps the whole gross.
	PlatformFlatFee decimal.Decimal `json:"platformFlatFee"`

	// CapAmount is an optional ceiling on partner earnings per payout
	// period. Nil means uncapped.
	CapAmount *decimal.Decimal `json:"capAmount,omitempty"`

	ThresholdSlabs []Slab `json:"thresholdSlabs,omitempty"`
}

// ValidateOptions tunes rule validation per deployment.
type ValidateOptions struct {
	// StrictShareSplit rejects rule sets where both share percents are set
	// and do not sum to exactly 100.
	StrictShareSplit bool
}

var hundred = decimal.NewFromInt(100)

func percentInRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// Validate checks the rule set before it is persisted or applied. It
// returns errors wrapping ErrValidation, except for an unrecognized model
// type which wraps ErrUnknownModelType.
func (r *RuleSet) Validate(opts ValidateOptions) error {
	if !r.ModelType.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownModelType, r.ModelType)
	}
	if !percentInRange(r.PartnerSharePercent) {
		return fmt.Errorf("%w: partnerSharePercent %s out of [0,100]", ErrValidation, r.PartnerSharePercent)
	}
	if !percentInRange(r.PlatformSharePercent) {
		return fmt.Errorf("%w: platformSharePercent %s out of [0,100]", ErrValidation, r.PlatformSharePercent)
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"fixedMonthlyRent", r.FixedMonthlyRent},
		{"minGuarantee", r.MinGuarantee},
		{"perParcelRate", r.PerParcelRate},
		{"perOpenRate", r.PerOpenRate},
		{"platformFlatFee", r.PlatformFlatFee},
	} {
		if f.v.IsNegative() {
			return fmt.Errorf("%w: %s must be non-negative", ErrValidation, f.name)
		}
	}
	if r.CapAmount != nil && r.CapAmount.IsNegative() {
		return fmt.Errorf("%w: capAmount must be non-negative", ErrValidation)
	}

	prev := decimal.Decimal{}
	for i, s := range r.ThresholdSlabs {
		if !percentInRange(s.PartnerPercent) {
			return fmt.Errorf("%w: slab %d partnerPercent out of [0,100]", ErrValidation, i)
		}
		if s.Upto.IsNegative() {
			return fmt.Errorf("%w: slab %d upto must be non-negative", ErrValidation, i)
		}
		if i > 0 && s.Upto.LessThanOrEqual(prev) {
			return fmt.Errorf("%w: thresholdSlabs not strictly increasing at index %d", ErrValidation, i)
		}
		prev = s.Upto
	}
	if r.ModelType == ModelCustom && len(r.ThresholdSlabs) == 0 {
		return fmt.Errorf("%w: custom model requires thresholdSlabs", ErrValidation)
	}

	if opts.StrictShareSplit &&
		!r.PartnerSharePercent.IsZero() && !r.PlatformSharePercent.IsZero() &&
		!r.PartnerSharePercent.Add(r.PlatformSharePercent).Equal(hundred) {
		return fmt.Errorf("%w: share percents must sum to 100", ErrValidation)
	}
	return nil
}

// Clone returns a deep copy, used as the calculation snapshot so later rule
// edits can never reach back into a ledgered entry.
func (r *RuleSet) Clone() RuleSet {
	out := *r
	if r.CapAmount != nil {
		cap := *r.CapAmount
		out.CapAmount = &cap
	}
	if len(r.ThresholdSlabs) > 0 {
		out.ThresholdSlabs = make([]Slab, len(r.ThresholdSlabs))
		copy(out.ThresholdSlabs, r.ThresholdSlabs)
	}
	return out
}

// Value / Scan let gorm persist the rule set as a JSON column.
func (r RuleSet) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *RuleSet) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = RuleSet{}
		return nil
	default:
		return fmt.Errorf("revenue: cannot scan %T into RuleSet", src)
	}
}
