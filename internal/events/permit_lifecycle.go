package events

import "time"

const PermitLifecycleTopic = "sipetak.permit.lifecycle.v1"

const (
	EventPermitSubmitted = "permit.submitted"
	EventPermitApproved  = "permit.approved"
	EventPermitRejected  = "permit.rejected"
)

type PermitLifecycleEvent struct {
	EventType        string    `json:"event_type"`
	UmkmLocationID   uint      `json:"umkm_location_id"`
	OwnerID          string    `json:"owner_id"`
	MasterLocationID string    `json:"master_location_id"`
	IzinStatus       string    `json:"izin_status"`
	OccurredAt       time.Time `json:"occurred_at"`
}
