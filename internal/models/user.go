package models

import "time"

const (
	DefaultLanguage = "en"
	DefaultTheme    = "light"
)

// User is a registered account. PasswordHash never leaves the service layer
// in a response.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Language     string    `json:"language"`
	Theme        string    `json:"theme"`
	Favorites    []string  `json:"favorites"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSettings is a partial settings update; empty fields are left alone.
type UserSettings struct {
	Language string `json:"language" form:"language"`
	Theme    string `json:"theme" form:"theme"`
}

// Empty reports whether the update would change nothing.
func (s UserSettings) Empty() bool {
	return s.Language == "" && s.Theme == ""
}

// ProfileStats aggregates the recipes owned by a user.
type ProfileStats struct {
	TotalRecipes int `json:"total_recipes"`
	TotalViews   int `json:"total_views"`
	TotalLikes   int `json:"total_likes"`
}
