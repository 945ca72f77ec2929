package models

import (
	"strconv"
	"time"
)

const (
	DefaultRecipeImage = "/static/images/default-recipe.jpg"
	DefaultAverage     = 4.5
)

// Recipe is a stored or sample recipe. Author is resolved at read time and
// is not persisted.
type Recipe struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	TitleHi     string    `json:"title_hi"`
	TitleMr     string    `json:"title_mr"`
	Category    string    `json:"category"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	StepsHi     []string  `json:"steps_hi"`
	StepsMr     []string  `json:"steps_mr"`
	PrepTime    string    `json:"prep_time"`
	CookTime    string    `json:"cook_time"`
	Servings    int       `json:"servings"`
	Image       string    `json:"image"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Likes       []string  `json:"likes"`
	Ratings     []int     `json:"ratings"`
	Views       int       `json:"views"`
	Source      string    `json:"source,omitempty"`
	Author      string    `json:"author"`
	Sample      bool      `json:"is_sample"`

	// LegacyLikes is set when a stored document kept its likes as a plain
	// number instead of a set of user ids.
	LegacyLikes *int `json:"-"`
}

// AverageRating is the mean rating rounded to one decimal, or DefaultAverage
// when nobody has rated yet. Rounding works on the exact binary value with
// ties to even, so 4.25 gives 4.2 and 4.75 gives 4.8.
func (r *Recipe) AverageRating() float64 {
	if len(r.Ratings) == 0 {
		return DefaultAverage
	}
	sum := 0
	for _, v := range r.Ratings {
		sum += v
	}
	mean := float64(sum) / float64(len(r.Ratings))
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(mean, 'f', 1, 64), 64)
	if err != nil {
		return mean
	}
	return rounded
}

func (r *Recipe) RatingCount() int {
	return len(r.Ratings)
}

// LikeCount returns the size of the like set, or the legacy counter.
func (r *Recipe) LikeCount() int {
	if r.LegacyLikes != nil {
		return *r.LegacyLikes
	}
	return len(r.Likes)
}

func (r *Recipe) LikedBy(userID string) bool {
	if userID == "" || r.LegacyLikes != nil {
		return false
	}
	for _, id := range r.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CategoryName returns the display name of the recipe's category.
func (r *Recipe) CategoryName() string {
	return CategoryDisplayName(r.Category)
}

// StepTranslation holds one step in every supported language.
type StepTranslation struct {
	EN string `json:"en"`
	HI string `json:"hi"`
	MR string `json:"mr"`
}

// TranslatedSteps pairs every English step with its Hindi and Marathi
// versions, falling back to English where a translation is missing.
func (r *Recipe) TranslatedSteps() []StepTranslation {
	out := make([]StepTranslation, len(r.Steps))
	for i, en := range r.Steps {
		out[i] = StepTranslation{EN: en, HI: en, MR: en}
		if i < len(r.StepsHi) {
			out[i].HI = r.StepsHi[i]
		}
		if i < len(r.StepsMr) {
			out[i].MR = r.StepsMr[i]
		}
	}
	return out
}

// Clone returns a deep copy.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Ingredients = cloneStrings(r.Ingredients)
	c.Steps = cloneStrings(r.Steps)
	c.StepsHi = cloneStrings(r.StepsHi)
	c.StepsMr = cloneStrings(r.StepsMr)
	c.Likes = cloneStrings(r.Likes)
	if r.Ratings != nil {
		c.Ratings = append([]int{}, r.Ratings...)
	}
	if r.LegacyLikes != nil {
		n := *r.LegacyLikes
		c.LegacyLikes = &n
	}
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	Title       string
	TitleHi     string
	TitleMr     string
	Category    string
	Ingredients []string
	Steps       []string
	StepsHi     []string
	StepsMr     []string
	PrepTime    string
	CookTime    string
	Servings    int
	Image       string
}

// RecipeUpdate overwrites only the fields that are non-nil.
type RecipeUpdate struct {
	Title       *string
	TitleHi     *string
	TitleMr     *string
	Category    *string
	Ingredients []string
	Steps       []string
	StepsHi     []string
	StepsMr     []string
	PrepTime    *string
	CookTime    *string
	Servings    *int
	Image       *string
}

// Empty reports whether the update carries no field at all.
func (u RecipeUpdate) Empty() bool {
	return u.Title == nil && u.TitleHi == nil && u.TitleMr == nil && u.Category == nil &&
		u.Ingredients == nil && u.Steps == nil && u.StepsHi == nil && u.StepsMr == nil &&
		u.PrepTime == nil && u.CookTime == nil && u.Servings == nil && u.Image == nil
}

// RecipeQuery filters a recipe listing.
type RecipeQuery struct {
	Category string
	Search   string
	Limit    int
	// OwnerID restricts the listing to one user's recipes when set.
	OwnerID string
}

// LikeAction is the outcome of a like toggle.
type LikeAction string

const (
	Liked   LikeAction = "liked"
	Unliked LikeAction = "unliked"
)
