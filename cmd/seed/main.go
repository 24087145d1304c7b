package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bakehouse/internal/config"
	"bakehouse/internal/db"
	"bakehouse/internal/logging"
	"bakehouse/internal/model"
	"bakehouse/internal/repository"
	"bakehouse/internal/service"
)

var sampleRecipes = []model.Recipe{
	{
		Title:        "Classic French Macarons",
		Description:  "Crisp almond shells sandwiched with silky vanilla buttercream.",
		Difficulty:   model.DifficultyHard,
		Category:     "Cookies",
		PrepTime:     "45 mins",
		CookTime:     "15 mins",
		Servings:     24,
		Ingredients:  []string{"100g almond flour", "100g icing sugar", "2 egg whites", "50g caster sugar", "120g butter"},
		Instructions: []string{"Sift almond flour with icing sugar", "Whip egg whites to soft peaks and add caster sugar", "Fold until the batter flows like lava", "Pipe rounds and rest for 30 minutes", "Bake at 150C for 15 minutes"},
		Tips:         []string{"Age the egg whites overnight", "Tap the tray to release air bubbles"},
	},
	{
		Title:        "Sourdough Country Loaf",
		Description:  "An open-crumb loaf with a blistered, crackling crust.",
		Difficulty:   model.DifficultyMedium,
		Category:     "Bread",
		PrepTime:     "24 hours",
		CookTime:     "45 mins",
		Servings:     8,
		Ingredients:  []string{"500g bread flour", "375g water", "100g active starter", "10g salt"},
		Instructions: []string{"Mix flour and water and rest for an hour", "Add starter and salt", "Stretch and fold every 30 minutes for 3 hours", "Shape and retard overnight", "Bake covered at 250C then uncovered until deep brown"},
		Tips:         []string{"Use a Dutch oven for steam"},
	},
	{
		Title:        "Lemon Tart",
		Description:  "Sharp lemon curd in a buttery sweet pastry shell.",
		Difficulty:   model.DifficultyMedium,
		Category:     "Tarts",
		PrepTime:     "40 mins",
		CookTime:     "35 mins",
		Servings:     10,
		Ingredients:  []string{"250g plain flour", "125g butter", "4 lemons", "4 eggs", "150g sugar", "150ml double cream"},
		Instructions: []string{"Rub butter into flour and bind with egg", "Blind bake the shell", "Whisk lemon juice, zest, eggs, sugar and cream", "Bake at 140C until just set"},
	},
	{
		Title:        "Vanilla Cupcakes",
		Description:  "Light sponge cupcakes topped with whipped vanilla frosting.",
		Difficulty:   model.DifficultyEasy,
		Category:     "Cakes",
		PrepTime:     "20 mins",
		CookTime:     "20 mins",
		Servings:     12,
		Ingredients:  []string{"150g self-raising flour", "150g butter", "150g sugar", "3 eggs", "1 tsp vanilla"},
		Instructions: []string{"Cream butter and sugar", "Beat in eggs and vanilla", "Fold in flour", "Bake at 180C for 20 minutes"},
	},
}

var sampleGallery = []model.GalleryItem{
	{Title: "Three-tier wedding cake", Category: "Cakes", Image: "https://images.unsplash.com/photo-1535254973040-607b474cb50d", Featured: true, Width: 800, Height: 1200},
	{Title: "Raspberry macaron tower", Category: "Cookies", Image: "https://images.unsplash.com/photo-1569864358642-9d1684040f43", Featured: true, Width: 800, Height: 800},
	{Title: "Morning croissants", Category: "Pastries", Image: "https://images.unsplash.com/photo-1555507036-ab1f4038808a", Width: 1200, Height: 800},
	{Title: "Rustic sourdough", Category: "Bread", Image: "https://images.unsplash.com/photo-1585478259715-876acc5be8eb", Width: 800, Height: 1000},
	{Title: "Birthday cupcakes", Category: "Cupcakes", Image: "https://images.unsplash.com/photo-1486427944299-d1955d23e34d", Featured: true, Width: 1000, Height: 800},
}

type result struct {
	created, updated, skipped int
}

func main() {
	cfg := config.Load()
	logger := logging.Default(cfg.LogLevel)
	logger.Info().Msg("starting seed script")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, db.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	ctx := context.Background()
	admin, err := seedAdmin(ctx, repository.NewUserRepository(gormDB), cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed admin")
	}
	logger.Info().Str("email", admin.Email).Msg("admin ready")

	recipes, err := seedRecipes(ctx, repository.NewRecipeRepository(gormDB), admin, sampleRecipes)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed recipes")
	}
	logResult(logger, "recipes", recipes)

	gallery, err := seedGallery(ctx, repository.NewGalleryRepository(gormDB), admin, sampleGallery)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed gallery")
	}
	logResult(logger, "gallery", gallery)

	logger.Info().Msg("seed completed successfully")
}

func logResult(logger zerolog.Logger, kind string, r result) {
	logger.Info().
		Str("kind", kind).
		Int("created", r.created).
		Int("updated", r.updated).
		Int("skipped", r.skipped).
		Msg("seeded")
}

// seedAdmin returns the admin account for email, creating it when absent.
// An existing non-admin user with that email is an error.
func seedAdmin(ctx context.Context, repo repository.UserRepository, name, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking admin %s: %w", email, err)
	}
	if existing != nil {
		if existing.Role != model.RoleAdmin {
			return nil, fmt.Errorf("user %s exists without the admin role", email)
		}
		return existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.User{Name: name, Email: email, PasswordHash: string(hash), Role: model.RoleAdmin}
	if err := repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("error creating admin %s: %w", email, err)
	}
	return admin, nil
}

// seedRecipes creates each recipe by slug, refreshing the ones that already exist.
func seedRecipes(ctx context.Context, repo repository.RecipeRepository, author *model.User, recipes []model.Recipe) (result, error) {
	var r result
	for _, recipe := range recipes {
		recipe.Slug = service.Slugify(recipe.Title)
		existing, err := repo.FindBySlug(ctx, recipe.Slug)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return r, fmt.Errorf("error checking recipe %s: %w", recipe.Slug, err)
		}

		if existing != nil {
			existing.Description = recipe.Description
			existing.Difficulty = recipe.Difficulty
			existing.Category = recipe.Category
			existing.PrepTime = recipe.PrepTime
			existing.CookTime = recipe.CookTime
			existing.Servings = recipe.Servings
			existing.Ingredients = recipe.Ingredients
			existing.Instructions = recipe.Instructions
			existing.Tips = recipe.Tips
			if err := repo.Update(ctx, existing); err != nil {
				return r, fmt.Errorf("error updating recipe %s: %w", recipe.Slug, err)
			}
			r.updated++
			continue
		}

		recipe.AuthorID = author.ID
		if err := repo.Create(ctx, &recipe); err != nil {
			return r, fmt.Errorf("error creating recipe %s: %w", recipe.Slug, err)
		}
		r.created++
	}
	return r, nil
}

// seedGallery adds items whose image is not in the gallery yet.
func seedGallery(ctx context.Context, repo repository.GalleryRepository, uploader *model.User, items []model.GalleryItem) (result, error) {
	var r result
	current, err := repo.List(ctx, repository.GalleryFilter{})
	if err != nil {
		return r, fmt.Errorf("error listing gallery: %w", err)
	}
	seen := make(map[string]bool, len(current))
	for _, item := range current {
		seen[item.Image] = true
	}

	for _, item := range items {
		if seen[item.Image] {
			r.skipped++
			continue
		}
		item.UploaderID = uploader.ID
		if err := repo.Create(ctx, &item); err != nil {
			return r, fmt.Errorf("error creating gallery item %q: %w", item.Title, err)
		}
		r.created++
	}
	return r, nil
}
