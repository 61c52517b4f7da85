// Package queue publishes payout settlements to a durable broker queue and
// runs the background consumer that writes the bookkeeping log.
package queue

// PayoutSettledEvent is published when a withdrawal is marked paid. It
// carries enough for downstream bookkeeping without querying the database.
type PayoutSettledEvent struct {
	WithdrawalID  uint   `json:"withdrawal_id"`
	ReferenceID   string `json:"reference_id"`
	InfluencerID  uint   `json:"influencer_id"`
	AmountCents   int64  `json:"amount_cents"`
	PaymentMethod string `json:"payment_method"`
	Note          string `json:"note,omitempty"`
	PaidAt        string `json:"paid_at"`
}
