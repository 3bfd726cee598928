package auth

type RegisterRequest struct {
	Nama     string  `json:"nama" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	NIK      *string `json:"nik" binding:"omitempty,len=16,numeric"`
	Phone    string  `json:"phone" binding:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type AuthResponse struct {
	ID       string  `json:"id"`
	Nama     string  `json:"nama"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	NIK      *string `json:"nik,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	IsActive bool    `json:"is_active"`
}
