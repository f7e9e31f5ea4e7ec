package model

// Chapter is a syllabus unit content and progress rows hang off.
type Chapter struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"size:255;not null"`
	Subject string `json:"subject" gorm:"size:100;not null;index"`
}
