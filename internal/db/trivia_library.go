package db

import "time"

// TriviaLibrary is the catalogue boards are filled from.
type TriviaLibrary struct {
	ID        uint      `gorm:"primaryKey"`
	Category  string    `gorm:"size:128;not null;uniqueIndex:idx_trivia_library_category_answer"`
	Answer    string    `gorm:"size:512;not null;uniqueIndex:idx_trivia_library_category_answer"`
	Question  string    `gorm:"size:512;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (TriviaLibrary) TableName() string { return "trivia_library" }
