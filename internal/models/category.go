package models

// CategoryAll selects every category in a listing.
const CategoryAll = "all"

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameHi string `json:"name_hi"`
	NameMr string `json:"name_mr"`
	Icon   string `json:"icon"`
}

var categories = []Category{
	{ID: CategoryAll, Name: "All Recipes", NameHi: "सभी रेसिपी", NameMr: "सर्व रेसिपी", Icon: "🍽️"},
	{ID: "veg", Name: "Vegetarian", NameHi: "शाकाहारी", NameMr: "शाकाहारी", Icon: "🥗"},
	{ID: "non-veg", Name: "Non-Vegetarian", NameHi: "मांसाहारी", NameMr: "मांसाहारी", Icon: "🍗"},
	{ID: "desserts", Name: "Desserts", NameHi: "मिठाई", NameMr: "मिठाई", Icon: "🍰"},
	{ID: "drinks", Name: "Drinks", NameHi: "पेय", NameMr: "पेय", Icon: "🥤"},
	{ID: "snacks", Name: "Snacks", NameHi: "नाश्ता", NameMr: "स्नॅक्स", Icon: "🍿"},
}

// Categories returns the category list, "all" first.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

var categoryNames = map[string]string{
	"veg":      "Vegetarian",
	"non-veg":  "Non-Vegetarian",
	"dessert":  "Desserts",
	"desserts": "Desserts",
	"drinks":   "Drinks",
	"snacks":   "Snacks",
}

// CategoryDisplayName maps a category id to its English label. Unknown ids
// are "Other".
func CategoryDisplayName(id string) string {
	if name, ok := categoryNames[id]; ok {
		return name
	}
	return "Other"
}
