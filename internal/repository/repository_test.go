package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bakehouse/internal/db"
	"bakehouse/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))
	return gormDB
}

func seedUser(t *testing.T, gormDB *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Baker", Email: email, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(gormDB).Create(context.Background(), user))
	return user
}

func TestUserRepository_FindByEmail(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	created := seedUser(t, gormDB, "baker@example.com")
	assert.Equal(t, model.RoleUser, created.Role)

	found, err := repo.FindByEmail(ctx, "baker@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	dup := &model.User{Name: "Other", Email: "baker@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, dup), gorm.ErrDuplicatedKey)
}

func TestRecipeRepository_ListPagination(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewRecipeRepository(gormDB)
	ctx := context.Background()
	author := seedUser(t, gormDB, "author@example.com")

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, &model.Recipe{
			Title:      fmt.Sprintf("Loaf %02d", i),
			Slug:       fmt.Sprintf("loaf-%02d", i),
			Difficulty: model.DifficultyEasy,
			Category:   "Bread",
			AuthorID:   author.ID,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	seen := map[uuid.UUID]bool{}
	for page, want := range map[int]int{1: 10, 2: 10, 3: 5, 4: 0} {
		recipes, total, err := repo.List(ctx, RecipeFilter{}, Pagination{Page: page, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Len(t, recipes, want, "page %d", page)
		for _, r := range recipes {
			assert.False(t, seen[r.ID], "recipe %s returned twice", r.Slug)
			seen[r.ID] = true
		}
	}
	assert.Len(t, seen, 25)

	first, _, err := repo.List(ctx, RecipeFilter{}, Pagination{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "loaf-24", first[0].Slug)
	require.NotNil(t, first[0].Author)
	assert.Equal(t, author.Email, first[0].Author.Email)
}

func TestRecipeRepository_ListFilters(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewRecipeRepository(gormDB)
	ctx := context.Background()
	author := seedUser(t, gormDB, "author@example.com")

	fixtures := []model.Recipe{
		{Title: "Classic French Macarons", Slug: "classic-french-macarons", Description: "Almond meringue cookies", Category: "Cookies", Difficulty: model.DifficultyHard},
		{Title: "Sourdough Boule", Slug: "sourdough-boule", Description: "A crusty 100% hydration loaf", Category: "Bread", Difficulty: model.DifficultyMedium},
		{Title: "Lemon Tart", Slug: "lemon-tart", Description: "Bright curd in a MACARON-crumb shell", Category: "Tarts", Difficulty: model.DifficultyMedium},
	}
	for i := range fixtures {
		fixtures[i].AuthorID = author.ID
		require.NoError(t, repo.Create(ctx, &fixtures[i]))
	}

	tests := []struct {
		name   string
		filter RecipeFilter
		want   []string
	}{
		{"category", RecipeFilter{Category: "Bread"}, []string{"sourdough-boule"}},
		{"difficulty", RecipeFilter{Difficulty: "Medium"}, []string{"sourdough-boule", "lemon-tart"}},
		{"search title and description case-insensitively", RecipeFilter{Search: "macaron"}, []string{"classic-french-macarons", "lemon-tart"}},
		{"search treats percent literally", RecipeFilter{Search: "100%"}, []string{"sourdough-boule"}},
		{"search wildcard characters do not match everything", RecipeFilter{Search: "_"}, nil},
		{"combined", RecipeFilter{Difficulty: "Medium", Search: "tart"}, []string{"lemon-tart"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, total, err := repo.List(ctx, tt.filter, Pagination{Page: 1, Limit: 10})
			require.NoError(t, err)
			var slugs []string
			for _, r := range recipes {
				slugs = append(slugs, r.Slug)
			}
			assert.ElementsMatch(t, tt.want, slugs)
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}
}

func TestRecipeRepository_SlugLookupAndUniqueness(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewRecipeRepository(gormDB)
	ctx := context.Background()
	author := seedUser(t, gormDB, "author@example.com")

	recipe := &model.Recipe{
		Title:        "Classic French Macarons",
		Slug:         "classic-french-macarons",
		Difficulty:   model.DifficultyHard,
		Ingredients:  []string{"100g almond flour", "100g icing sugar", "2 egg whites"},
		Instructions: []string{"Sift", "Whip", "Fold", "Pipe"},
		AuthorID:     author.ID,
	}
	require.NoError(t, repo.Create(ctx, recipe))

	bySlug, err := repo.FindBySlug(ctx, "classic-french-macarons")
	require.NoError(t, err)
	byID, err := repo.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, byID.ID, bySlug.ID)
	assert.Equal(t, []string{"Sift", "Whip", "Fold", "Pipe"}, []string(byID.Instructions))

	exists, err := repo.SlugExists(ctx, "classic-french-macarons", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists(ctx, "classic-french-macarons", recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	dup := &model.Recipe{Title: "Classic French Macarons", Slug: "classic-french-macarons", AuthorID: author.ID}
	assert.ErrorIs(t, repo.Create(ctx, dup), gorm.ErrDuplicatedKey)

	require.NoError(t, repo.Delete(ctx, recipe.ID))
	_, err = repo.FindByID(ctx, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGalleryRepository_ListFilters(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewGalleryRepository(gormDB)
	ctx := context.Background()
	admin := seedUser(t, gormDB, "admin@example.com")

	items := []model.GalleryItem{
		{Title: "Wedding cake", Category: "Cakes", Image: "https://cdn/a.jpg", Featured: true},
		{Title: "Birthday cake", Category: "Cakes", Image: "https://cdn/b.jpg"},
		{Title: "Croissants", Category: "Pastries", Image: "https://cdn/c.jpg", Featured: true},
	}
	for i := range items {
		items[i].UploaderID = admin.ID
		require.NoError(t, repo.Create(ctx, &items[i]))
	}

	all, err := repo.List(ctx, GalleryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cakes, err := repo.List(ctx, GalleryFilter{Category: "Cakes"})
	require.NoError(t, err)
	assert.Len(t, cakes, 2)

	featured, err := repo.List(ctx, GalleryFilter{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Len(t, featured, 2)
	for _, item := range featured {
		assert.True(t, item.Featured)
	}

	featuredCakes, err := repo.List(ctx, GalleryFilter{Category: "Cakes", FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featuredCakes, 1)
	assert.Equal(t, "Wedding cake", featuredCakes[0].Title)
}

func TestContactRepository_StatusLifecycle(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewContactRepository(gormDB)
	ctx := context.Background()

	msg := &model.ContactMessage{Name: "Ana", Email: "ana@example.com", Subject: "Wedding", Message: "Three tiers please"}
	require.NoError(t, repo.Create(ctx, msg))
	assert.Equal(t, model.MessageStatusNew, msg.Status)

	require.NoError(t, repo.UpdateStatus(ctx, msg.ID, model.MessageStatusReplied))

	replied, total, err := repo.List(ctx, model.MessageStatusReplied, Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, replied, 1)
	assert.Nil(t, replied[0].EventDate)

	fresh, total, err := repo.List(ctx, model.MessageStatusNew, Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, fresh)

	require.NoError(t, repo.Delete(ctx, msg.ID))
	_, err = repo.FindByID(ctx, msg.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPagination_Offset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 0, Limit: 10}.Offset())
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Pagination{Page: 3, Limit: 10}.Offset())
}

func TestUserRepository_ListOldestFirst(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, email := range []string{"second@example.com", "first@example.com"} {
		require.NoError(t, repo.Create(ctx, &model.User{
			Name:         "Baker",
			Email:        email,
			PasswordHash: "hash",
			CreatedAt:    base.Add(time.Duration(1-i) * time.Hour),
		}))
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "first@example.com", users[0].Email)
	assert.Equal(t, "second@example.com", users[1].Email)
}
