package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/smartchef/backend/internal/models"
)

type userDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Username  string               `bson:"username"`
	Email     string               `bson:"email"`
	Password  []byte               `bson:"password"`
	Language  string               `bson:"language"`
	Theme     string               `bson:"theme"`
	CreatedAt time.Time            `bson:"created_at"`
	Favorites []primitive.ObjectID `bson:"favorites"`
}

func (d *userDoc) toModel() *models.User {
	u := &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Language:     d.Language,
		Theme:        d.Theme,
		CreatedAt:    d.CreatedAt,
		Favorites:    make([]string, 0, len(d.Favorites)),
	}
	for _, f := range d.Favorites {
		u.Favorites = append(u.Favorites, f.Hex())
	}
	return u
}

// recipeFields are the columns written on insert and read back verbatim.
type recipeFields struct {
	Title       string              `bson:"title"`
	TitleHi     string              `bson:"title_hi"`
	TitleMr     string              `bson:"title_mr"`
	Category    string              `bson:"category"`
	Ingredients []string            `bson:"ingredients"`
	Steps       []string            `bson:"steps"`
	StepsHi     []string            `bson:"steps_hi"`
	StepsMr     []string            `bson:"steps_mr"`
	PrepTime    string              `bson:"prep_time"`
	CookTime    string              `bson:"cook_time"`
	Servings    int                 `bson:"servings"`
	Image       string              `bson:"image"`
	CreatedBy   *primitive.ObjectID `bson:"created_by"`
	CreatedAt   time.Time           `bson:"created_at"`
	Source      string              `bson:"source,omitempty"`
}

// recipeDoc is a recipe as read. Likes stays raw because older documents
// keep a plain like counter there instead of an array of user ids.
type recipeDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	recipeFields `bson:",inline"`
	Likes        bson.RawValue `bson:"likes"`
	Ratings      []int         `bson:"ratings"`
	Views        int           `bson:"views"`
}

// newRecipeDoc is a recipe as first inserted.
type newRecipeDoc struct {
	recipeFields `bson:",inline"`
	Likes        []primitive.ObjectID `bson:"likes"`
	Ratings      []int                `bson:"ratings"`
	Views        int                  `bson:"views"`
}

func (d *recipeDoc) toModel() *models.Recipe {
	r := &models.Recipe{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		TitleHi:     d.TitleHi,
		TitleMr:     d.TitleMr,
		Category:    d.Category,
		Ingredients: d.Ingredients,
		Steps:       d.Steps,
		StepsHi:     d.StepsHi,
		StepsMr:     d.StepsMr,
		PrepTime:    d.PrepTime,
		CookTime:    d.CookTime,
		Servings:    d.Servings,
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
		Source:      d.Source,
		Ratings:     d.Ratings,
		Views:       d.Views,
	}
	if r.Ratings == nil {
		r.Ratings = []int{}
	}
	if d.CreatedBy != nil {
		r.CreatedBy = d.CreatedBy.Hex()
	}
	r.Likes, r.LegacyLikes = decodeLikes(d.Likes)
	return r
}

// decodeLikes reads either an array of user ids (ObjectIDs or strings) or a
// legacy numeric counter.
func decodeLikes(raw bson.RawValue) ([]string, *int) {
	ids := []string{}
	var n int
	switch raw.Type {
	case bsontype.Array:
		values, err := raw.Array().Values()
		if err != nil {
			return ids, nil
		}
		for _, v := range values {
			switch v.Type {
			case bsontype.ObjectID:
				ids = append(ids, v.ObjectID().Hex())
			case bsontype.String:
				ids = append(ids, v.StringValue())
			}
		}
		return ids, nil
	case bsontype.Int32:
		n = int(raw.Int32())
	case bsontype.Int64:
		n = int(raw.Int64())
	case bsontype.Double:
		n = int(raw.Double())
	default:
		return ids, nil
	}
	return nil, &n
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RecipeID  primitive.ObjectID `bson:"recipe_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *commentDoc) toModel() *models.Comment {
	return &models.Comment{
		ID:        d.ID.Hex(),
		RecipeID:  d.RecipeID.Hex(),
		UserID:    d.UserID.Hex(),
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
}
