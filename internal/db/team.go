package db

import "time"

type Team struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_teams_game_name"`
	Name      string    `gorm:"size:64;not null;uniqueIndex:idx_teams_game_name"`
	Score     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Players   []Player
}
