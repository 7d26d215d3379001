package domain

import "gorm.io/gorm"

// Item is the minimal demo entity kept alongside the board domain.
type Item struct {
	gorm.Model
	Name string `gorm:"size:100;not null"`
}
