package model

import "time"

// Role enumerates the global access levels a member can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the local member record. Rows are created and updated exclusively
// by the identity webhook; every other component only reads them.
type User struct {
	ID         string    `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	ExternalID string    `gorm:"column:external_id;size:190;not null;uniqueIndex" json:"externalId"`
	Email      string    `gorm:"column:email;size:320;not null" json:"email"`
	FirstName  string    `gorm:"column:first_name;size:190" json:"first_name"`
	Role       Role      `gorm:"column:role;size:16;not null;default:USER" json:"role"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`

	Events    []Event    `gorm:"foreignKey:HostID" json:"events,omitempty"`
	Projects  []Project  `gorm:"foreignKey:UserID" json:"projects,omitempty"`
	Resources []Resource `gorm:"foreignKey:UserID" json:"resources,omitempty"`
	Polls     []Poll     `gorm:"foreignKey:AdminID" json:"polls,omitempty"`
	Votes     []Vote     `gorm:"foreignKey:UserID" json:"votes,omitempty"`
	Likes     []Like     `gorm:"foreignKey:UserID" json:"likes,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user carries the global admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
