package enums

import "fmt"

// ProposalStatus tracks the lifecycle of an AMC proposal.
type ProposalStatus string

const (
	ProposalStatusNew      ProposalStatus = "new"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExpired  ProposalStatus = "expired"
)

var validProposalStatuses = []ProposalStatus{
	ProposalStatusNew,
	ProposalStatusSent,
	ProposalStatusAccepted,
	ProposalStatusRejected,
	ProposalStatusExpired,
}

// String implements fmt.Stringer.
func (p ProposalStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p ProposalStatus) IsValid() bool {
	for _, candidate := range validProposalStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProposalStatus converts raw input into a ProposalStatus.
func ParseProposalStatus(value string) (ProposalStatus, error) {
	for _, candidate := range validProposalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid proposal status %q", value)
}
