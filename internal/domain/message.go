package domain

// Message is one raw notification received from the message source.
type Message struct {
	ID            string
	ReceiptHandle string
	Body          []byte
	ReceiveCount  int
}

// MessageState is the furthest pipeline stage a message reached.
type MessageState string

const (
	StateReceived     MessageState = "received"
	StateDecoded      MessageState = "decoded"
	StateMatched      MessageState = "matched"
	StateDispatched   MessageState = "dispatched"
	StateAcknowledged MessageState = "acknowledged"
)

// DispatchStatus summarises the per-service outcomes of one event.
type DispatchStatus string

const (
	DispatchNone    DispatchStatus = "none"
	DispatchPartial DispatchStatus = "partial"
	DispatchFull    DispatchStatus = "full"
)

// ReconcileResult records what one pipeline pass did with a message.
type ReconcileResult struct {
	MessageID string
	Event     *ImagePushEvent
	State     MessageState
	Matched   int
	Dispatch  DispatchStatus
	Outcomes  []UpdateOutcome
	Err       error
}

// Failed returns the outcomes that did not succeed.
func (r ReconcileResult) Failed() []UpdateOutcome {
	var failed []UpdateOutcome
	for _, o := range r.Outcomes {
		if !o.Succeeded {
			failed = append(failed, o)
		}
	}
	return failed
}

// SummarizeOutcomes derives the dispatch status of a set of outcomes.
// An empty set is DispatchNone, as is a set where nothing succeeded.
func SummarizeOutcomes(outcomes []UpdateOutcome) DispatchStatus {
	succeeded := 0
	for _, o := range outcomes {
		if o.Succeeded {
			succeeded++
		}
	}

	switch {
	case succeeded == 0:
		return DispatchNone
	case succeeded == len(outcomes):
		return DispatchFull
	default:
		return DispatchPartial
	}
}
