package model

import "time"

// DocumentType enumerates the kinds of learning material a resource can hold.
type DocumentType string

const (
	DocumentTypeDocs   DocumentType = "docs"
	DocumentTypeVideos DocumentType = "videos"
	DocumentTypeImages DocumentType = "images"
	DocumentTypeLinks  DocumentType = "links"
)

// ValidDocumentType reports whether the value is a known document type.
func ValidDocumentType(value string) bool {
	switch DocumentType(value) {
	case DocumentTypeDocs, DocumentTypeVideos, DocumentTypeImages, DocumentTypeLinks:
		return true
	}
	return false
}

// Resource is a learning resource shared by a member. The listed links point
// at files already uploaded to the external storage provider.
type Resource struct {
	ID           string    `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID       string    `gorm:"column:user_id;size:190;not null;index" json:"userId"`
	Title        string    `gorm:"column:title;size:320;not null" json:"title"`
	Description  string    `gorm:"column:description;type:text;not null" json:"description"`
	Category     string    `gorm:"column:category;size:128;not null" json:"category"`
	DocumentType string    `gorm:"column:document_type;size:32;not null" json:"document_type"`
	Links        []string  `gorm:"column:resource_links;type:text;serializer:json" json:"resourceLink"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (Resource) TableName() string {
	return "resources"
}
