package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bakehouse/internal/model"
)

// RecipeFilter narrows a recipe listing. Empty fields are not applied.
type RecipeFilter struct {
	Category   string
	Difficulty string
	Search     string
}

// RecipeRepository defines recipe persistence operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	FindBySlug(ctx context.Context, slug string) (*model.Recipe, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter RecipeFilter, page Pagination) ([]model.Recipe, int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create creates a new recipe.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Author").Create(recipe).Error
}

// Update saves every column of an existing recipe.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Author").Save(recipe).Error
}

// Delete removes a recipe permanently.
func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Recipe{}).Error
}

// FindByID finds a recipe by ID.
func (r *recipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindBySlug finds a recipe by its slug.
func (r *recipeRepository) FindBySlug(ctx context.Context, slug string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SlugExists reports whether another recipe already owns slug.
// Pass uuid.Nil as excludeID to check against every recipe.
func (r *recipeRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of matching recipes, newest first, and the total match count.
func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, page Pagination) ([]model.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Recipe{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(description) LIKE ? ESCAPE '"+likeEscape+"')", pattern, pattern)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	if err := q.Preload("Author").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}
