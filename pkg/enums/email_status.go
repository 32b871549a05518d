package enums

// EmailStatus records the outcome of a proposal email attempt.
type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// String implements fmt.Stringer.
func (e EmailStatus) String() string {
	return string(e)
}
