package model

import "time"

// ContentItem is an admin-managed piece of course material: inline text
// (notes, test descriptions) or a reference to an uploaded file.
//
// IsPremium is advisory metadata only; the server does not gate reads on it.
type ContentItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Type      string    `json:"type" gorm:"size:50;not null;index"`
	Content   string    `json:"content,omitempty" gorm:"type:text"`
	FileURL   string    `json:"file_url,omitempty" gorm:"size:512"`
	ChapterID uint      `json:"chapter_id" gorm:"index"`
	IsPremium bool      `json:"is_premium" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
