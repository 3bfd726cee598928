package permit

type SubmitPermitRequest struct {
	MasterLocationID string  `json:"master_location_id" binding:"required,uuid"`
	NamaLapak        string  `json:"nama_lapak" binding:"required,max=255"`
	BusinessType     string  `json:"business_type" binding:"required,max=100"`
	KTPFileURL       string  `json:"ktp_file_url" binding:"required,url"`
	SuratLainnyaURL  *string `json:"surat_lainnya_url" binding:"omitempty,url"`
	Description      string  `json:"description"`
}

type SubmissionResponse struct {
	ID              string  `json:"id"`
	KTPFileURL      string  `json:"ktp_file_url"`
	SuratLainnyaURL *string `json:"surat_lainnya_url,omitempty"`
	Description     string  `json:"description,omitempty"`
	DateSubmitted   string  `json:"date_submitted"`
}

type PermitResponse struct {
	ID               uint                 `json:"id"`
	UserID           string               `json:"user_id"`
	MasterLocationID string               `json:"master_location_id"`
	NamaLapak        string               `json:"nama_lapak"`
	BusinessType     string               `json:"business_type"`
	IzinStatus       string               `json:"izin_status"`
	DateApplied      string               `json:"date_applied"`
	DateExpired      *string              `json:"date_expired,omitempty"`
	Submissions      []SubmissionResponse `json:"submissions,omitempty"`
}

type CertificateResponse struct {
	NomorSertifikat    string `json:"nomor_sertifikat"`
	NamaLapak          string `json:"nama_lapak"`
	BusinessType       string `json:"business_type"`
	TanggalTerbit      string `json:"tanggal_terbit"`
	TanggalKedaluwarsa string `json:"tanggal_kedaluwarsa"`
	Status             string `json:"status"`
}
