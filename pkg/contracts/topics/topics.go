package topics

const (
	// Settlement
	SlipSettled    = "slip_settled"
	SlipSettledDLQ = "slip_settled_dlq"
)
