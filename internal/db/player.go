package db

import "time"

// Player places a user on one team of a game. A user plays on at most one
// team per game.
type Player struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_players_game_user"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_players_game_user"`
	TeamID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:64;not null"`
	Active    bool      `gorm:"not null;default:true"`
	JoinedAt  time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
