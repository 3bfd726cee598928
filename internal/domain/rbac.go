package domain

// EnforceRequest adalah input pengecekan izin akses berbasis role
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}
