package auth

import (
	"time"

	"go-hrsuit/internal/domain"

	"github.com/google/uuid"
)

// User is a login account. An Employee record may point at it one-to-one.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username    string    `gorm:"type:varchar(150);uniqueIndex:uq_users_username;not null"`
	Email       string    `gorm:"type:varchar(255)"`
	Password    string    `gorm:"type:varchar(255);not null"`
	IsStaff     bool      `gorm:"not null;default:false"`
	IsSuperuser bool      `gorm:"not null;default:false"`
	IsActive    bool      `gorm:"not null;default:true"`
	LastLogin   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role is admin only for staff superusers; everyone else is staff.
func (u User) Role() string {
	if u.IsStaff && u.IsSuperuser {
		return domain.RoleAdmin
	}
	return domain.RoleStaff
}
