package mealpress

// Kind selects a content namespace. Each kind is backed by its own
// directory, so recipe and post slugs never collide with each other.
type Kind string

const (
	KindRecipe Kind = "recipes"
	KindPost   Kind = "blog"
)

// Noun returns the singular human name of the kind, for messages.
func (k Kind) Noun() string {
	switch k {
	case KindRecipe:
		return "recipe"
	case KindPost:
		return "post"
	}
	return string(k)
}

// Status governs visibility to public rendering. Drafts and archived
// records are only reachable through the admin surface.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func validStatus(s Status) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// Nutrition holds the fixed per-serving nutrition facts of a recipe.
// Values keep their units ("320 kcal", "12g"), so they stay strings.
type Nutrition struct {
	Calories string `yaml:"calories,omitempty" json:"calories,omitempty"`
	Protein  string `yaml:"protein,omitempty" json:"protein,omitempty"`
	Carbs    string `yaml:"carbs,omitempty" json:"carbs,omitempty"`
	Fat      string `yaml:"fat,omitempty" json:"fat,omitempty"`
}

// ContentRecord is a persisted recipe or blog post: front-matter metadata
// plus a markdown body. Slug is derived from the title once at creation
// and never recomputed, so URLs stay stable across edits.
type ContentRecord struct {
	ID          string `yaml:"id" json:"id"`
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`
	Date        string `yaml:"date" json:"date"`
	Status      Status `yaml:"status" json:"status"`

	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`

	// Recipe-only fields.
	Ingredients  []string  `yaml:"ingredients,omitempty" json:"ingredients,omitempty"`
	Instructions []string  `yaml:"instructions,omitempty" json:"instructions,omitempty"`
	PrepTime     string    `yaml:"prepTime,omitempty" json:"prepTime,omitempty"`
	CookTime     string    `yaml:"cookTime,omitempty" json:"cookTime,omitempty"`
	Servings     int       `yaml:"servings,omitempty" json:"servings,omitempty"`
	Difficulty   string    `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Nutrition    Nutrition `yaml:"nutrition,omitempty" json:"nutrition,omitempty"`

	Kind Kind   `yaml:"-" json:"-"`
	Body string `yaml:"-" json:"body,omitempty"`
}

// Link returns the public URL path of the record.
func (r ContentRecord) Link() string {
	return "/" + string(r.Kind) + "/" + r.Slug + "/"
}

// Comment is visitor feedback on the site. Comments live only for the
// process lifetime; see CommentStore.
type Comment struct {
	ID      int    `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// Image is the stored metadata of an uploaded image.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}
