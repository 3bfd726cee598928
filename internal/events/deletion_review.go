package events

import "time"

const DeletionReviewTopic = "sipetak.deletion.review.v1"

const (
	EventDeletionRequested = "deletion.requested"
	EventDeletionApproved  = "deletion.approved"
	EventDeletionRejected  = "deletion.rejected"
)

type DeletionReviewEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	UmkmLocationID uint      `json:"umkm_location_id"`
	OwnerID        string    `json:"owner_id"`
	ReviewedBy     string    `json:"reviewed_by,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
