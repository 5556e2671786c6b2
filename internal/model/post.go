package model

import "time"

// DateFormat is the human-readable publication date stamped on a post at
// creation time, e.g. "August 31, 2026".
const DateFormat = "January 2, 2006"

// BlogPost represents a published article.
type BlogPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"uniqueIndex;size:250;not null"`
	Subtitle  string    `json:"subtitle" gorm:"size:250;not null"`
	Date      string    `json:"date" gorm:"size:250;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	ImgURL    string    `json:"img_url" gorm:"size:250;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
