package domain

type CarStatus string

const (
	CarStatusAvailable CarStatus = "AVAILABLE"
	CarStatusRented    CarStatus = "RENTED"
)

// Car is the listing an owner puts up for rent. At most one car exists per
// owner principal; re-listing requires removal first.
type Car struct {
	Owner               Principal `json:"owner"`
	PricePerDay         Amount    `json:"price_per_day"` // informational, not enforced against rental amount
	Status              CarStatus `json:"status"`
	AvailableToWithdraw Amount    `json:"available_to_withdraw"`
	CommissionPercent   Amount    `json:"commission_percent"` // 0-100, fixed at listing time
}
