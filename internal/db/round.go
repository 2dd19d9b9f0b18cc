package db

import "time"

type Round struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_rounds_game_ordinal"`
	Ordinal   int       `gorm:"not null;uniqueIndex:idx_rounds_game_ordinal"`
	Class     string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"not null"`
	Board     Board
}

type Board struct {
	ID         uint `gorm:"primaryKey"`
	RoundID    uint `gorm:"uniqueIndex;not null"`
	Categories []Category
}

type Category struct {
	ID      uint   `gorm:"primaryKey"`
	BoardID uint   `gorm:"index;not null;uniqueIndex:idx_categories_board_ordinal"`
	Ordinal int    `gorm:"not null;uniqueIndex:idx_categories_board_ordinal"`
	Name    string `gorm:"size:128;not null"`
	Tiles   []Tile
}

type Tile struct {
	ID            uint   `gorm:"primaryKey"`
	CategoryID    uint   `gorm:"index;not null;uniqueIndex:idx_tiles_category_ordinal"`
	Ordinal       int    `gorm:"not null;uniqueIndex:idx_tiles_category_ordinal"`
	IsDailyDouble bool   `gorm:"not null;default:false"`
	TriviaID      uint   `gorm:"index;not null"`
	Trivia        Trivia `gorm:"constraint:OnDelete:RESTRICT"`
}

type Trivia struct {
	ID       uint   `gorm:"primaryKey"`
	Answer   string `gorm:"size:512;not null"`
	Question string `gorm:"size:512;not null"`
}

func (Trivia) TableName() string { return "trivia" }
