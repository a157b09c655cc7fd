package learning

import "time"

// Document is a user-submitted source plus the AI-generated study material.
// The four generated fields start empty and are overwritten by generation.
type Document struct {
	ID         string    `gorm:"primaryKey;column:id;size:64" json:"$id"`
	Title      string    `gorm:"column:title;not null" json:"title"`
	Text       string    `gorm:"column:text;type:text" json:"text"`
	CreatedBy  string    `gorm:"column:created_by;size:64;not null;index" json:"createdBy"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	Story      string    `gorm:"column:story;type:text" json:"story"`
	Steps      string    `gorm:"column:steps;type:text" json:"steps"`
	Challenges string    `gorm:"column:challenges;type:text" json:"challenges"`
	Flashcards string    `gorm:"column:flashcards;type:text" json:"flashcards"`
}

func (Document) TableName() string { return "document" }

// OwnedBy reports whether userID created the document.
func (d *Document) OwnedBy(userID string) bool {
	return d != nil && d.CreatedBy != "" && d.CreatedBy == userID
}

// GeneratedContent is the partial update written back after AI generation.
type GeneratedContent struct {
	Story      string
	Steps      string
	Challenges string
	Flashcards string
}
