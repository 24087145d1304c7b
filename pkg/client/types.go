package client

import "time"

// User is an account without its credentials.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Recipe is a published recipe.
type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Difficulty   string    `json:"difficulty"`
	Category     string    `json:"category"`
	PrepTime     string    `json:"prepTime"`
	CookTime     string    `json:"cookTime"`
	Servings     int       `json:"servings"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	Tips         []string  `json:"tips"`
	Image        string    `json:"image"`
	AuthorID     string    `json:"authorId"`
	Author       *User     `json:"author,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RecipeInput creates a recipe.
type RecipeInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Category     string   `json:"category,omitempty"`
	PrepTime     string   `json:"prepTime,omitempty"`
	CookTime     string   `json:"cookTime,omitempty"`
	Servings     int      `json:"servings,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	Tips         []string `json:"tips,omitempty"`
	Image        string   `json:"image,omitempty"`
}

// RecipeUpdate changes only its non-nil fields.
type RecipeUpdate struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Difficulty   *string  `json:"difficulty,omitempty"`
	Category     *string  `json:"category,omitempty"`
	PrepTime     *string  `json:"prepTime,omitempty"`
	CookTime     *string  `json:"cookTime,omitempty"`
	Servings     *int     `json:"servings,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	Tips         []string `json:"tips,omitempty"`
	Image        *string  `json:"image,omitempty"`
}

// RecipeQuery filters and pages ListRecipes. Zero values are omitted.
type RecipeQuery struct {
	Category   string
	Difficulty string
	Search     string
	Page       int
	Limit      int
}

// RecipePage is one page of recipes.
type RecipePage struct {
	Recipes     []Recipe
	Count       int
	Total       int64
	TotalPages  int
	CurrentPage int
}

// GalleryItem is a showcase photo.
type GalleryItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Image      string    `json:"image"`
	Featured   bool      `json:"featured"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	UploaderID string    `json:"uploaderId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GalleryInput creates a gallery item.
type GalleryInput struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image"`
	Featured bool   `json:"featured,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// GalleryUpdate changes only its non-nil fields.
type GalleryUpdate struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	Image    *string `json:"image,omitempty"`
	Featured *bool   `json:"featured,omitempty"`
	Width    *int    `json:"width,omitempty"`
	Height   *int    `json:"height,omitempty"`
}

// GalleryQuery filters ListGallery and GalleryLayout.
type GalleryQuery struct {
	Category     string
	FeaturedOnly bool
}

// LayoutQuery sizes the masonry columns. Zero values use server defaults.
type LayoutQuery struct {
	GalleryQuery
	Columns     int
	ColumnWidth int
	Gap         int
}

// Placement positions one item in a masonry column.
type Placement struct {
	Index  int     `json:"index"`
	Column int     `json:"column"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// GalleryLayout is the masonry arrangement of gallery items.
type GalleryLayout struct {
	Items  []GalleryItem `json:"items"`
	Layout struct {
		Columns    [][]int     `json:"columns"`
		Heights    []float64   `json:"heights"`
		Placements []Placement `json:"placements"`
	} `json:"layout"`
}

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	EventDate string `json:"eventDate,omitempty"`
	EventType string `json:"eventType,omitempty"`
}

// ContactMessage is a stored enquiry.
type ContactMessage struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	EventDate *time.Time `json:"eventDate"`
	EventType *string    `json:"eventType"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// MessagePage is one page of contact messages.
type MessagePage struct {
	Messages    []ContactMessage
	Count       int
	Total       int64
	TotalPages  int
	CurrentPage int
}

// UploadedImage describes a stored image.
type UploadedImage struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}
