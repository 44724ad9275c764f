package model

import (
	"time"

	"todo-api.com/todo-api/internal/constants"
)

type Todo struct {
	ID        uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string             `gorm:"size:100;not null" json:"title"`
	Completed bool               `gorm:"not null;index" json:"completed"`
	Priority  constants.Priority `gorm:"type:varchar(10);not null;index" json:"priority"`
	CreatedAt time.Time          `gorm:"not null;index" json:"created_at"`
}
