package model

import "time"

// Roles assigned at registration. The first registered account becomes the
// blog administrator; everyone after that is a regular commenter.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:250;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:250;not null"`
	PasswordHash string    `json:"-" gorm:"size:250;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;default:'user'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Posts    []BlogPost `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []Comment  `json:"comments,omitempty" gorm:"foreignKey:AuthorID"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
