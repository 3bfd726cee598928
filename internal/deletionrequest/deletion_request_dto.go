package deletionrequest

type CreateDeletionRequest struct {
	UmkmLocationID uint   `json:"umkm_location_id" binding:"required,min=1"`
	Reason         string `json:"reason" binding:"required"`
}

type RejectDeletionRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,min=5,max=500"`
}

type DeletionRequestResponse struct {
	ID              string  `json:"id"`
	UmkmLocationID  uint    `json:"umkm_location_id"`
	UserID          string  `json:"user_id"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RequestedAt     string  `json:"requested_at"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// QueueItemResponse adalah satu baris antrian admin, sudah di-join dengan
// data lokasi dan pemiliknya supaya layar review tidak perlu fetch tambahan.
type QueueItemResponse struct {
	DeletionRequestResponse
	NamaLapak          string `json:"nama_lapak"`
	BusinessType       string `json:"business_type"`
	MasterLocationName string `json:"master_location_name"`
	OwnerName          string `json:"owner_name"`
	OwnerEmail         string `json:"owner_email"`
}
