package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Difficulty grades how hard a recipe is to make.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Recipe is a published bake with its ordered ingredient and step lists.
type Recipe struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string                      `json:"title" gorm:"size:255;not null"`
	Slug         string                      `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	Description  string                      `json:"description" gorm:"type:text"`
	Difficulty   Difficulty                  `json:"difficulty" gorm:"type:varchar(10);not null;default:'Easy';index"`
	Category     string                      `json:"category" gorm:"size:100;index"`
	PrepTime     string                      `json:"prepTime" gorm:"size:50"`
	CookTime     string                      `json:"cookTime" gorm:"size:50"`
	Servings     int                         `json:"servings"`
	Ingredients  datatypes.JSONSlice[string] `json:"ingredients"`
	Instructions datatypes.JSONSlice[string] `json:"instructions"`
	Tips         datatypes.JSONSlice[string] `json:"tips"`
	Image        string                      `json:"image" gorm:"size:512"`
	AuthorID     uuid.UUID                   `json:"authorId" gorm:"type:char(36);not null;index"`
	CreatedAt    time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time                   `json:"updatedAt"`

	// Relations
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsValidDifficulty reports whether d is one of the known grades.
func IsValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
