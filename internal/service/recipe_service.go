package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/model"
	"bakehouse/internal/repository"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

var errEmptySlug = apperrors.Validation("title must contain at least one letter or number")

// RecipeQuery filters and paginates a recipe listing.
type RecipeQuery struct {
	Category   string
	Difficulty string
	Search     string
	Page       int
	Limit      int
}

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	Title        string
	Description  string
	Difficulty   model.Difficulty
	Category     string
	PrepTime     string
	CookTime     string
	Servings     int
	Ingredients  []string
	Instructions []string
	Tips         []string
	Image        string
}

// RecipeUpdate carries the fields to change. Nil fields are left as they are.
type RecipeUpdate struct {
	Title        *string
	Description  *string
	Difficulty   *model.Difficulty
	Category     *string
	PrepTime     *string
	CookTime     *string
	Servings     *int
	Ingredients  []string
	Instructions []string
	Tips         []string
	Image        *string
}

// RecipeService handles recipe catalog operations.
type RecipeService interface {
	List(ctx context.Context, q RecipeQuery) (*Page[model.Recipe], error)
	GetOne(ctx context.Context, idOrSlug string) (*model.Recipe, error)
	Create(ctx context.Context, in RecipeInput, author *model.User) (*model.Recipe, error)
	Update(ctx context.Context, id string, upd RecipeUpdate, user *model.User) (*model.Recipe, error)
	Delete(ctx context.Context, id string, user *model.User) error
}

type recipeService struct {
	repo repository.RecipeRepository
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(repo repository.RecipeRepository) RecipeService {
	return &recipeService{repo: repo}
}

// Slugify derives the URL identifier of a recipe title.
func Slugify(title string) string {
	return slug.Make(title)
}

// canModify reports whether user may change a record owned by ownerID.
func canModify(user *model.User, ownerID uuid.UUID) bool {
	return user != nil && (user.IsAdmin() || user.ID == ownerID)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (s *recipeService) List(ctx context.Context, q RecipeQuery) (*Page[model.Recipe], error) {
	p := newPagination(q.Page, q.Limit)
	filter := repository.RecipeFilter{
		Category:   filterValue(q.Category),
		Difficulty: filterValue(q.Difficulty),
		Search:     strings.TrimSpace(q.Search),
	}
	recipes, total, err := s.repo.List(ctx, filter, p)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return newPage(recipes, total, p), nil
}

// GetOne looks a recipe up by id when idOrSlug is UUID-shaped, by slug otherwise.
func (s *recipeService) GetOne(ctx context.Context, idOrSlug string) (*model.Recipe, error) {
	var (
		recipe *model.Recipe
		err    error
	)
	if uuidPattern.MatchString(idOrSlug) {
		recipe, err = s.repo.FindByID(ctx, uuid.MustParse(idOrSlug))
	} else {
		recipe, err = s.repo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) Create(ctx context.Context, in RecipeInput, author *model.User) (*model.Recipe, error) {
	recipeSlug := Slugify(in.Title)
	if recipeSlug == "" {
		return nil, errEmptySlug
	}
	if in.Difficulty == "" {
		in.Difficulty = model.DifficultyEasy
	}
	if !model.IsValidDifficulty(in.Difficulty) {
		return nil, apperrors.Validation("difficulty must be Easy, Medium or Hard")
	}

	// The unique index on slug catches concurrent creates that pass this check.
	exists, err := s.repo.SlugExists(ctx, recipeSlug, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateRecipe
	}

	recipe := &model.Recipe{
		Title:        strings.TrimSpace(in.Title),
		Slug:         recipeSlug,
		Description:  in.Description,
		Difficulty:   in.Difficulty,
		Category:     in.Category,
		PrepTime:     in.PrepTime,
		CookTime:     in.CookTime,
		Servings:     in.Servings,
		Ingredients:  nonNil(in.Ingredients),
		Instructions: nonNil(in.Instructions),
		Tips:         nonNil(in.Tips),
		Image:        in.Image,
		AuthorID:     author.ID,
	}
	if err := s.repo.Create(ctx, recipe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateRecipe
		}
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	recipe.Author = author
	return recipe, nil
}

func (s *recipeService) find(ctx context.Context, rawID string) (*model.Recipe, error) {
	id, err := parseID(rawID, apperrors.ErrRecipeNotFound)
	if err != nil {
		return nil, err
	}
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) Update(ctx context.Context, id string, upd RecipeUpdate, user *model.User) (*model.Recipe, error) {
	recipe, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(user, recipe.AuthorID) {
		return nil, apperrors.ErrNotRecipeOwner
	}

	if upd.Title != nil && strings.TrimSpace(*upd.Title) != recipe.Title {
		newSlug := Slugify(*upd.Title)
		if newSlug == "" {
			return nil, errEmptySlug
		}
		exists, err := s.repo.SlugExists(ctx, newSlug, recipe.ID)
		if err != nil {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		if exists {
			return nil, apperrors.ErrDuplicateRecipe
		}
		recipe.Title = strings.TrimSpace(*upd.Title)
		recipe.Slug = newSlug
	}
	if upd.Difficulty != nil {
		if !model.IsValidDifficulty(*upd.Difficulty) {
			return nil, apperrors.Validation("difficulty must be Easy, Medium or Hard")
		}
		recipe.Difficulty = *upd.Difficulty
	}
	if upd.Description != nil {
		recipe.Description = *upd.Description
	}
	if upd.Category != nil {
		recipe.Category = *upd.Category
	}
	if upd.PrepTime != nil {
		recipe.PrepTime = *upd.PrepTime
	}
	if upd.CookTime != nil {
		recipe.CookTime = *upd.CookTime
	}
	if upd.Servings != nil {
		recipe.Servings = *upd.Servings
	}
	if upd.Ingredients != nil {
		recipe.Ingredients = upd.Ingredients
	}
	if upd.Instructions != nil {
		recipe.Instructions = upd.Instructions
	}
	if upd.Tips != nil {
		recipe.Tips = upd.Tips
	}
	if upd.Image != nil {
		recipe.Image = *upd.Image
	}

	if err := s.repo.Update(ctx, recipe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateRecipe
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) Delete(ctx context.Context, id string, user *model.User) error {
	recipe, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(user, recipe.AuthorID) {
		return apperrors.ErrNotRecipeOwner
	}
	if err := s.repo.Delete(ctx, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
