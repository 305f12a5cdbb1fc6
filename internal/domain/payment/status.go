package payment

type Status string

const (
	StatusCreated Status = "created"
	StatusPaid    Status = "paid"
	// StatusFailed exists in the stored enum but no code path writes it:
	// a failed verification rejects the request and leaves the order in
	// "created" so the client can retry.
	StatusFailed Status = "failed"
)
