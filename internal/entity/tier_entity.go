// FILE: internal/entity/tier_entity.go
package entity

type Tier string

const (
	TierFree    Tier = "free"
	TierPlus    Tier = "plus"
	TierPremium Tier = "premium"
	TierPro     Tier = "pro"
)

// Tiers lists every selectable tier, in display order.
var Tiers = []Tier{TierFree, TierPlus, TierPremium, TierPro}

func (t Tier) Valid() bool {
	for _, known := range Tiers {
		if t == known {
			return true
		}
	}
	return false
}

func (t Tier) IsPaid() bool {
	return t.Valid() && t != TierFree
}

// Price is the monthly price in USD. Free is zero by definition.
func (t Tier) Price() float64 {
	switch t {
	case TierPlus:
		return 9.99
	case TierPremium:
		return 19.99
	case TierPro:
		return 29.99
	}
	return 0
}
