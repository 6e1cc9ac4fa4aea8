package model

import "time"

// PollStatus enumerates the two poll states. Transitions happen only through
// explicit updates; expiry never flips the status on its own.
type PollStatus string

const (
	PollStatusOpen  PollStatus = "OPEN"
	PollStatusClose PollStatus = "CLOSE"
)

// Poll is a multiple-choice question owned by the member who created it.
type Poll struct {
	ID          string     `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	AdminID     string     `gorm:"column:admin_id;size:190;not null;index" json:"adminId"`
	Title       string     `gorm:"column:title;size:320;not null" json:"title"`
	Description string     `gorm:"column:description;type:text;not null" json:"description"`
	Status      PollStatus `gorm:"column:status;size:16;not null;default:OPEN" json:"status"`
	ExpiresAt   time.Time  `gorm:"column:expires_at;not null" json:"-"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`

	Options []PollOption `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"options"`
	Votes   []Vote       `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"votes"`
}

// TableName provides the explicit table binding for GORM.
func (Poll) TableName() string {
	return "polls"
}

// PollOption is one selectable choice within a poll.
type PollOption struct {
	ID     string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	PollID string `gorm:"column:poll_id;size:190;not null;index" json:"pollId"`
	Text   string `gorm:"column:text;size:320;not null" json:"text"`
}

// TableName provides the explicit table binding for GORM.
func (PollOption) TableName() string {
	return "poll_options"
}

// Vote records a single user's choice in a poll. The composite unique index
// on (poll_id, user_id) is the authority on "one vote per user per poll".
type Vote struct {
	ID        string    `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	PollID    string    `gorm:"column:poll_id;size:190;not null;uniqueIndex:idx_votes_poll_user,priority:1" json:"pollId"`
	UserID    string    `gorm:"column:user_id;size:190;not null;uniqueIndex:idx_votes_poll_user,priority:2" json:"userId"`
	OptionID  string    `gorm:"column:option_id;size:190;not null" json:"optionId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`

	User   *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Option *PollOption `gorm:"foreignKey:OptionID" json:"option,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (Vote) TableName() string {
	return "votes"
}
