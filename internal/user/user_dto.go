package user

type UpdateUserRequest struct {
	Nama  string  `json:"nama" binding:"required,max=255"`
	Phone string  `json:"phone" binding:"omitempty,max=20"`
	NIK   *string `json:"nik" binding:"omitempty,len=16,numeric"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Nama     string  `json:"nama"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	NIK      *string `json:"nik,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	IsActive bool    `json:"is_active"`
}
