package services

import "math"

// ServicePrice is one static catalog entry. A UnitAmount of 0 is the
// manual-quote sentinel, never a free service.
type ServicePrice struct {
	Label      string
	UnitAmount int64 // minor currency units per item
}

// PricingConfig carries every pricing knob so the calculator and the
// pipeline stay testable and per-deployment overridable.
type PricingConfig struct {
	Catalog        map[string]ServicePrice
	RushMultiplier float64
	MaxAmount      int64 // pipeline ceiling in minor units
	Currency       string
}

// DefaultPricingConfig returns the studio's catalog: retouching products
// plus booking deposit items, all priced in USD cents.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Catalog: map[string]ServicePrice{
			"standard-retouch": {Label: "Standard Retouching", UnitAmount: 2500},
			"advanced-retouch": {Label: "Advanced Retouching", UnitAmount: 4500},
			"restoration":      {Label: "Photo Restoration", UnitAmount: 6000},
			"custom-retouch":   {Label: "Custom Retouching", UnitAmount: 0},
			"portrait-session": {Label: "Portrait Session Deposit", UnitAmount: 15000},
			"wedding-consult":  {Label: "Wedding Consultation", UnitAmount: 0},
		},
		RushMultiplier: 1.5,
		MaxAmount:      10_000_000,
		Currency:       "usd",
	}
}

// Known reports whether serviceID exists in the catalog.
func (p PricingConfig) Known(serviceID string) bool {
	_, ok := p.Catalog[serviceID]
	return ok
}

// CalculateAmount maps (service, quantity, rush) to a total in minor units.
// Unknown service ids resolve to unit price 0, the same sentinel as manual
// quoting; callers must short-circuit on a 0 result instead of charging.
// Pure function, no side effects.
func (p PricingConfig) CalculateAmount(serviceID string, quantity int, rush bool) int64 {
	entry := p.Catalog[serviceID]

	total := float64(entry.UnitAmount * int64(quantity))
	if rush {
		total *= p.RushMultiplier
	}

	return int64(math.Floor(total + 0.5)) // round half-up to the nearest cent
}
