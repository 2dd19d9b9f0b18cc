package db

import "time"

// The action tables form the append-only ledger of a game. Their unique
// indexes repeat the engine's one-per-tile and one-per-team rules.

type Choice struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null"`
	MessageID int64     `gorm:"not null"`
	TileID    uint      `gorm:"not null;uniqueIndex:idx_choices_tile"`
	TeamID    uint      `gorm:"index;not null"`
	UserID    uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Buzz struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null"`
	MessageID int64     `gorm:"not null"`
	TileID    uint      `gorm:"not null;uniqueIndex:idx_buzzes_tile_team"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_buzzes_tile_team"`
	UserID    uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Buzz) TableName() string { return "buzzes" }

type Response struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null"`
	MessageID int64     `gorm:"not null"`
	TileID    uint      `gorm:"not null;uniqueIndex:idx_responses_tile_team"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_responses_tile_team"`
	UserID    uint      `gorm:"not null"`
	Question  string    `gorm:"size:512;not null"`
	IsCorrect bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Wager struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null"`
	MessageID int64     `gorm:"not null"`
	TileID    uint      `gorm:"not null;uniqueIndex:idx_wagers_tile_team"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_wagers_tile_team"`
	UserID    uint      `gorm:"not null"`
	Amount    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Reveal struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null"`
	RoundID   uint      `gorm:"index;not null"`
	Level     string    `gorm:"size:16;not null;uniqueIndex:idx_reveals_entity_detail"`
	LevelID   uint      `gorm:"not null;uniqueIndex:idx_reveals_entity_detail"`
	Detail    string    `gorm:"size:32;not null;uniqueIndex:idx_reveals_entity_detail"`
	CreatedAt time.Time `gorm:"not null"`
}
