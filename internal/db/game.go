package db

import "time"

type Game struct {
	ID                uint      `gorm:"primaryKey"`
	Code              string    `gorm:"size:12;uniqueIndex;not null"`
	Name              string    `gorm:"size:64;not null"`
	OwnerID           uint      `gorm:"index;not null"`
	MaxTeams          int       `gorm:"not null;default:3"`
	MaxPlayersPerTeam int       `gorm:"not null;default:3"`
	Status            string    `gorm:"size:32;not null"`
	NextMessageID     int64     `gorm:"not null;default:0"`
	NextRoundID       *uint     `gorm:"index"`
	NextActionType    string    `gorm:"size:32"`
	NextChooserID     *uint     `gorm:"index"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
	Rounds            []Round
	Teams             []Team
	Events            []Event
}
