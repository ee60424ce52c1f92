package utils

import "rentacar-backend/internal/domain"

var oneHundred = domain.NewAmount(100)

// CommissionFor computes the administrator's cut of a rental:
// floor(percent * amount / 100), with overflow-checked multiply then
// divide. A zero (or unset) percentage yields zero commission.
func CommissionFor(percent, amount domain.Amount) (domain.Amount, error) {
	if !percent.IsPositive() {
		return domain.NewAmount(0), nil
	}
	product, err := percent.Mul(amount)
	if err != nil {
		return domain.Amount{}, err
	}
	return product.Div(oneHundred)
}

// TotalToPay is the amount a renter is charged: base rent plus commission,
// overflow-checked.
func TotalToPay(amount, commission domain.Amount) (domain.Amount, error) {
	return amount.Add(commission)
}
