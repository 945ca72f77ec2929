package types

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username        string `json:"username" form:"username" binding:"required"`
	Email           string `json:"email" form:"email" binding:"required,email"`
	Password        string `json:"password" form:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required"`
}

// LoginRequest accepts either a username or an email in Username.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// SettingsRequest is a partial settings update.
type SettingsRequest struct {
	Language string `json:"language" form:"language"`
	Theme    string `json:"theme" form:"theme"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Absent fields are left unchanged.
type UpdateRecipeRequest struct {
	Title       *string  `json:"title"`
	TitleHi     *string  `json:"title_hi"`
	TitleMr     *string  `json:"title_mr"`
	Category    *string  `json:"category"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	StepsHi     []string `json:"steps_hi"`
	StepsMr     []string `json:"steps_mr"`
	PrepTime    *string  `json:"prep_time"`
	CookTime    *string  `json:"cook_time"`
	Servings    *int     `json:"servings"`
	Image       *string  `json:"image"`
}

// RateRequest carries the raw rating so non-numeric input can be rejected
// with a message rather than a bind error.
type RateRequest struct {
	Rating string `json:"rating" form:"rating"`
}

// CommentRequest represents the request body for adding a comment
type CommentRequest struct {
	Text string `json:"text" form:"text"`
}
