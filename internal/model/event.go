package model

import "time"

// Event is a club event hosted by a member.
type Event struct {
	ID          string    `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	HostID      string    `gorm:"column:host_id;size:190;not null;index" json:"hostId"`
	Title       string    `gorm:"column:title;size:320;not null" json:"title"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	Type        string    `gorm:"column:type;size:64;not null" json:"type"`
	Location    string    `gorm:"column:location;size:320;not null" json:"location"`
	Guest       string    `gorm:"column:guest;size:320" json:"guest"`
	Tags        string    `gorm:"column:tags;size:512" json:"tags"`
	Time        time.Time `gorm:"column:time;not null" json:"-"`
	Participant int       `gorm:"column:participant;not null;default:0" json:"participant"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`

	Host *User `gorm:"foreignKey:HostID" json:"host,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (Event) TableName() string {
	return "events"
}
