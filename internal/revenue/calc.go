package revenue

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Usage is the per-event context the calculator needs beyond the gross
// amount: how many parcel/open events the gross covers, and how much the
// partner has already earned in the current payout period (cap bookkeeping).
type Usage struct {
	EventCount          int64
	OpenCount           int64
	PeriodPartnerEarned decimal.Decimal
}

// Split is the two-way division of one gross amount.
type Split struct {
	PartnerShare  decimal.Decimal
	PlatformShare decimal.Decimal
}

// Calculate maps (gross, rules, usage) to a partner/platform split. Pure:
// no clock, no storage. All amounts are rounded to 2dp half-up and the
// invariant partner + platform == gross holds exactly after rounding; the
// rounding remainder always lands on the platform side.
func Calculate(gross decimal.Decimal, rules RuleSet, usage Usage) (Split, error) {
	if gross.IsNegative() {
		return Split{}, fmt.Errorf("%w: %s", ErrInvalidAmount, gross)
	}
	if usage.EventCount <= 0 {
		usage.EventCount = 1
	}

	var partner decimal.Decimal
	switch rules.ModelType {
	case ModelFullPartnerProfit:
		partner = gross.Sub(rules.PlatformFlatFee)

	case ModelRevenueShare:
		partner = gross.Mul(rules.PartnerSharePercent).Div(hundred)
		partner = applyCap(partner, rules.CapAmount, usage.PeriodPartnerEarned)

	case ModelFixedRent:
		// Rent accrues on a monthly cycle as its own ledger entry type;
		// per-parcel the partner earns nothing.
		partner = decimal.Zero

	case ModelFranchise:
		platformTake := rules.PerParcelRate.Mul(decimal.NewFromInt(usage.EventCount)).
			Add(rules.PerOpenRate.Mul(decimal.NewFromInt(usage.OpenCount)))
		partner = gross.Sub(platformTake)

	case ModelHybrid:
		// The fixed-rent component of a hybrid model rides the monthly
		// accrual stream; per-parcel only the share component applies.
		partner = gross.Mul(rules.PartnerSharePercent).Div(hundred)
		partner = applyCap(partner, rules.CapAmount, usage.PeriodPartnerEarned)

	case ModelCustom:
		partner = slabSplit(gross, rules.ThresholdSlabs)

	default:
		return Split{}, fmt.Errorf("%w: %q", ErrUnknownModelType, rules.ModelType)
	}

	gross = roundHalfUp(gross)
	partner = roundHalfUp(partner)
	if partner.IsNegative() {
		partner = decimal.Zero
	}
	if partner.GreaterThan(gross) {
		partner = gross
	}
	return Split{PartnerShare: partner, PlatformShare: gross.Sub(partner)}, nil
}

// roundHalfUp rounds to 2dp, ties away from zero. Amounts are non-negative
// here so this is round-half-up.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// applyCap clips a partner share so cumulative period earnings never exceed
// the cap. Nil cap means uncapped.
func applyCap(share decimal.Decimal, cap *decimal.Decimal, earned decimal.Decimal) decimal.Decimal {
	if cap == nil {
		return share
	}
	room := cap.Sub(earned)
	if room.IsNegative() {
		room = decimal.Zero
	}
	if share.GreaterThan(room) {
		return room
	}
	return share
}

// slabSplit applies threshold slabs progressively over the gross amount:
// the portion below the first upto earns that slab's percent, the portion
// in the next band the next percent, and anything beyond the last upto
// keeps the last slab's percent.
func slabSplit(gross decimal.Decimal, slabs []Slab) decimal.Decimal {
	if len(slabs) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	prev := decimal.Zero
	for _, s := range slabs {
		if gross.LessThanOrEqual(prev) {
			return total
		}
		bandTop := s.Upto
		if gross.LessThan(bandTop) {
			bandTop = gross
		}
		band := bandTop.Sub(prev)
		total = total.Add(band.Mul(s.PartnerPercent).Div(hundred))
		prev = s.Upto
	}
	if gross.GreaterThan(prev) {
		last := slabs[len(slabs)-1]
		total = total.Add(gross.Sub(prev).Mul(last.PartnerPercent).Div(hundred))
	}
	return total
}
