package domain

const (
	RoleAdmin = "Admin"
	RoleUMKM  = "UMKM"
)

// ActorContext adalah identitas yang sudah diverifikasi oleh lapisan auth.
// Service layer menerimanya secara eksplisit, bukan dari state global,
// dan tetap melakukan cek role/ownership sendiri.
type ActorContext struct {
	UserID string
	Role   string
}

func (a ActorContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}
