// ABOUTME: Content moderation queue models
// ABOUTME: Posts and comments are approved or rejected with a reason

package models

// ModerationStatus is the review state of a post or comment
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// ModerationItem is a user-submitted post or comment awaiting review
type ModerationItem struct {
	ID           int              `json:"id"`
	Kind         string           `json:"kind"` // post, comment
	Author       string           `json:"author"`
	Title        string           `json:"title,omitempty"`
	Content      string           `json:"content"`
	Status       ModerationStatus `json:"status"`
	RejectReason string           `json:"reject_reason,omitempty"`
	CreatedAt    string           `json:"created_at,omitempty"`
}

// RejectInput carries the reason shown to the author
type RejectInput struct {
	Reason string `json:"reason"`
}

func (in RejectInput) Validate() error {
	if err := required("reason", in.Reason); err != nil {
		return err
	}
	return maxLen("reason", in.Reason, 500)
}

// ParseModerationStatus maps a filter string; empty means all
func ParseModerationStatus(s string) (ModerationStatus, error) {
	switch st := ModerationStatus(s); st {
	case "", ModerationPending, ModerationApproved, ModerationRejected:
		return st, nil
	}
	return "", invalid("status", "must be pending, approved or rejected")
}
