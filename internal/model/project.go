package model

import "time"

// Project is a member-submitted project. The Likes counter mirrors the number
// of Like rows referencing the project; both are only ever written inside the
// same transaction.
type Project struct {
	ID          string    `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID      string    `gorm:"column:user_id;size:190;not null;index" json:"userId"`
	Title       string    `gorm:"column:title;size:320;not null" json:"title"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	GithubLink  string    `gorm:"column:github_link;size:512;not null" json:"githubLink"`
	LiveLink    string    `gorm:"column:live_link;size:512" json:"liveLink"`
	Tags        []string  `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	Likes       int       `gorm:"column:likes;not null;default:0" json:"likes"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`

	User    *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LikedBy []Like `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"likedBy"`
}

// TableName provides the explicit table binding for GORM.
func (Project) TableName() string {
	return "projects"
}

// Like records that one user liked one project. The composite unique index is
// the authority on "at most one like per (user, project)".
type Like struct {
	ID        string    `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID    string    `gorm:"column:user_id;size:190;not null;uniqueIndex:idx_likes_user_project,priority:1" json:"userId"`
	ProjectID string    `gorm:"column:project_id;size:190;not null;uniqueIndex:idx_likes_user_project,priority:2" json:"projectId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (Like) TableName() string {
	return "likes"
}
