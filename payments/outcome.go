package payments

// Status is the normalized result of a charge attempt, regardless of which
// backend produced it.
type Status string

const (
	// StatusSecured means the money is guaranteed: the card settled, or the
	// method is cash on delivery and the order can be taken.
	StatusSecured Status = "secured"
	// StatusPending means the charge was initiated but settlement happens
	// out of band (the customer confirms a prompt on their phone).
	StatusPending Status = "pending"
	// StatusDeclined covers everything that did not go through: merchant
	// declines, validation rejections, carrier outages and timeouts.
	StatusDeclined Status = "declined"
)

// Outcome is the single result shape every backend is mapped onto.
type Outcome struct {
	Status         Status `json:"status"`
	TransactionRef string `json:"transaction_ref,omitempty"`
	Note           string `json:"note,omitempty"`
	Reason         string `json:"reason,omitempty"`
	// TimedOut marks a decline caused by the backend not answering in time,
	// so it can be reported apart from an explicit merchant decline.
	TimedOut bool `json:"timed_out,omitempty"`
}

// Approved reports whether the outcome permits committing an order.
func (o Outcome) Approved() bool {
	return o.Status == StatusSecured || o.Status == StatusPending
}

func Secured(ref, note string) Outcome {
	return Outcome{Status: StatusSecured, TransactionRef: ref, Note: note}
}

func Pending(ref, note string) Outcome {
	return Outcome{Status: StatusPending, TransactionRef: ref, Note: note}
}

func Declined(reason string) Outcome {
	return Outcome{Status: StatusDeclined, Reason: reason}
}

func TimedOut() Outcome {
	return Outcome{Status: StatusDeclined, Reason: "timed out", TimedOut: true}
}
