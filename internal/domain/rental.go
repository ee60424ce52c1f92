package domain

// Rental is the single-slot record for a (renter, owner) pair. A renter
// renting the same owner again overwrites the previous record; this is not
// a rental history log.
type Rental struct {
	Renter          Principal `json:"renter"`
	Owner           Principal `json:"owner"`
	TotalDaysToRent uint32    `json:"total_days_to_rent"`
	Amount          Amount    `json:"amount"`     // base rent paid, excluding commission
	Commission      Amount    `json:"commission"` // commission collected for this rental
}
