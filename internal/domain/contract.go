package domain

// Principal is an opaque account identifier capable of being authorized,
// holding asset balances and owning cars.
type Principal string

// ContractState holds the singleton entities written once at
// initialization and the running custody counters.
type ContractState struct {
	Admin                 Principal `json:"admin"`
	PaymentToken          Principal `json:"payment_token"`
	ContractBalance       Amount    `json:"contract_balance"`
	AccumulatedCommission Amount    `json:"accumulated_commission"`
}
