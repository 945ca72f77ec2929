package sqlstore

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pageza/smartchef/backend/internal/models"
)

// StringList stores a []string as a JSON array in a text column. Searches
// run against the plain-text companion columns instead, see searchText.
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]string(a)); err != nil {
		return nil, err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// searchText joins list one element per line, so a LIKE pattern without a
// newline never matches across two elements.
func searchText(list []string) string {
	return strings.Join(list, "\n")
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList source %T", value)
	}

	return json.Unmarshal(data, a)
}

type userRow struct {
	ID           string     `gorm:"type:varchar(36);primaryKey"`
	Username     string     `gorm:"size:50;not null;uniqueIndex"`
	Email        string     `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash []byte     `gorm:"not null"`
	Language     string     `gorm:"size:8;not null;default:'en'"`
	Theme        string     `gorm:"size:16;not null;default:'light'"`
	Favorites    StringList `gorm:"type:text"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (u *userRow) toModel() *models.User {
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Language:     u.Language,
		Theme:        u.Theme,
		Favorites:    []string(u.Favorites),
		CreatedAt:    u.CreatedAt,
	}
}

type recipeRow struct {
	ID          string     `gorm:"type:varchar(36);primaryKey"`
	Title       string     `gorm:"size:255;not null;index"`
	TitleHi     string     `gorm:"size:255"`
	TitleMr     string     `gorm:"size:255"`
	Category    string     `gorm:"size:50;index"`
	Ingredients StringList `gorm:"type:text"`
	Steps       StringList `gorm:"type:text"`
	StepsHi     StringList `gorm:"type:text"`
	StepsMr     StringList `gorm:"type:text"`
	PrepTime    string     `gorm:"size:50"`
	CookTime    string     `gorm:"size:50"`
	Servings    int
	Image       string    `gorm:"size:512"`
	CreatedBy   *string   `gorm:"type:varchar(36);index"`
	Source      string    `gorm:"size:100"`
	Views       int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"index"`

	// Plain-text copies of Ingredients and Steps for substring search.
	IngredientsText string `gorm:"type:text"`
	StepsText       string `gorm:"type:text"`

	Likes   []likeRow   `gorm:"foreignKey:RecipeID"`
	Ratings []ratingRow `gorm:"foreignKey:RecipeID"`
}

func (recipeRow) TableName() string { return "recipes" }

func newRecipeRow(r *models.Recipe) *recipeRow {
	row := &recipeRow{
		ID:          r.ID,
		Title:       r.Title,
		TitleHi:     r.TitleHi,
		TitleMr:     r.TitleMr,
		Category:    r.Category,
		Ingredients: StringList(r.Ingredients),
		Steps:       StringList(r.Steps),
		StepsHi:     StringList(r.StepsHi),
		StepsMr:     StringList(r.StepsMr),
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Image:       r.Image,
		Source:      r.Source,
		Views:       r.Views,
		CreatedAt:   r.CreatedAt,

		IngredientsText: searchText(r.Ingredients),
		StepsText:       searchText(r.Steps),
	}
	if r.CreatedBy != "" {
		owner := r.CreatedBy
		row.CreatedBy = &owner
	}
	return row
}

func (r *recipeRow) toModel() *models.Recipe {
	m := &models.Recipe{
		ID:          r.ID,
		Title:       r.Title,
		TitleHi:     r.TitleHi,
		TitleMr:     r.TitleMr,
		Category:    r.Category,
		Ingredients: []string(r.Ingredients),
		Steps:       []string(r.Steps),
		StepsHi:     []string(r.StepsHi),
		StepsMr:     []string(r.StepsMr),
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Image:       r.Image,
		Source:      r.Source,
		Views:       r.Views,
		CreatedAt:   r.CreatedAt,
		Likes:       make([]string, 0, len(r.Likes)),
		Ratings:     make([]int, 0, len(r.Ratings)),
	}
	if r.CreatedBy != nil {
		m.CreatedBy = *r.CreatedBy
	}
	for _, l := range r.Likes {
		m.Likes = append(m.Likes, l.UserID)
	}
	for _, rt := range r.Ratings {
		m.Ratings = append(m.Ratings, rt.Value)
	}
	return m
}

// likeRow makes (recipe, user) unique, which gives likes set semantics.
type likeRow struct {
	RecipeID  string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time
}

func (likeRow) TableName() string { return "recipe_likes" }

type ratingRow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	RecipeID  string `gorm:"type:varchar(36);not null;index"`
	UserID    string `gorm:"type:varchar(36)"`
	Value     int    `gorm:"not null"`
	CreatedAt time.Time
}

func (ratingRow) TableName() string { return "recipe_ratings" }

type commentRow struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	RecipeID  string    `gorm:"type:varchar(36);not null;index:idx_comments_recipe_created"`
	UserID    string    `gorm:"type:varchar(36)"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_comments_recipe_created"`
}

func (commentRow) TableName() string { return "comments" }

func (c *commentRow) toModel() *models.Comment {
	return &models.Comment{
		ID:        c.ID,
		RecipeID:  c.RecipeID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
