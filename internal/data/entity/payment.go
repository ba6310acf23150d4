package entity

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusOverdue  PaymentStatus = "overdue"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// paymentTransitions is independent of the booking graph, but its value gates
// booking confirmation -> activation. Refunded is terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:  {PaymentStatusPartial, PaymentStatusPaid},
	PaymentStatusPartial:  {PaymentStatusPaid, PaymentStatusPending, PaymentStatusRefunded},
	PaymentStatusPaid:     {PaymentStatusPending, PaymentStatusRefunded},
	PaymentStatusOverdue:  {PaymentStatusPaid, PaymentStatusPending},
	PaymentStatusRefunded: {},
}

// CanTransitionTo reports whether the payment graph allows current -> next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the next-states reachable from s.
func (s PaymentStatus) AllowedTransitions() []PaymentStatus {
	return paymentTransitions[s]
}

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[s]
	return ok
}
