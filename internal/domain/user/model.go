package user

import "time"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleAnalyst      Role = "analyst"
	RoleEntrepreneur Role = "entrepreneur"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleAnalyst, RoleEntrepreneur:
		return Role(s), true
	}
	return "", false
}

type User struct {
	UID      uint    `gorm:"primaryKey;column:u_id" json:"user_id"`
	Username string  `gorm:"size:50;not null;unique" json:"username"`
	Password string  `gorm:"size:255;not null" json:"-"`
	Email    *string `gorm:"size:100" json:"email"`
	FullName *string `gorm:"size:100" json:"full_name"`
	Role     Role    `gorm:"size:20;default:'entrepreneur';not null" json:"role"`
	// CanReview marks an analyst as cleared to act on applications.
	// Always true for admins, always false for entrepreneurs.
	CanReview bool      `gorm:"default:false" json:"can_review"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
