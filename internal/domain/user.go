package domain

import "time"

// Role is the privilege tier gating access to the private namespace.
type Role string

const (
	RoleBasic     Role = "User"
	RoleSuperuser Role = "Admin"
)

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	return r == RoleBasic || r == RoleSuperuser
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID             uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	PasswordHash   string     `json:"-" gorm:"not null"`
	FirstName      string     `json:"first_name" gorm:"not null"`
	LastName       string     `json:"last_name" gorm:"not null"`
	OtherName      *string    `json:"other_name"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Phone          *string    `json:"phone"`
	Birthday       *time.Time `json:"birthday" gorm:"type:date"`
	CityID         *uint      `json:"city_id"`
	AdditionalInfo *string    `json:"additional_info"`
	Role           Role       `json:"role" gorm:"type:varchar(16);not null;default:'User'"`

	City *City `json:"-" gorm:"foreignKey:CityID"`
}

func (u *User) IsSuperuser() bool {
	return u.Role == RoleSuperuser
}

// City is a lookup entity users may reference as their home city. It is
// read-only from this service's perspective.
type City struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name"`
}

// CityHint is the denormalized {id, name} projection accompanying a
// privileged user listing, one entry per listed user with a home city.
type CityHint struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
