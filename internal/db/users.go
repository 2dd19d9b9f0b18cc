package db

import (
	"errors"
	"fmt"

	"trivia/internal/engine"

	"gorm.io/gorm"
)

func CreateUser(conn *gorm.DB, name string) (engine.User, error) {
	record := User{Name: name, Active: true}
	if err := conn.Create(&record).Error; err != nil {
		return engine.User{}, fmt.Errorf("create user: %w", err)
	}
	return engine.User{ID: record.ID, Name: record.Name, Active: record.Active}, nil
}

// GetUser looks a user up by id. A missing user is reported as
// engine.KindNotFound.
func GetUser(conn *gorm.DB, id uint) (engine.User, error) {
	var record User
	err := conn.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.User{}, engine.NewError(engine.KindNotFound, "user not found")
	}
	if err != nil {
		return engine.User{}, fmt.Errorf("get user: %w", err)
	}
	return engine.User{ID: record.ID, Name: record.Name, Active: record.Active}, nil
}
