package mongostore

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/models"
)

type recipeRepository struct {
	coll *mongo.Collection
}

func (r *recipeRepository) List(ctx context.Context, q models.RecipeQuery) ([]*models.Recipe, error) {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.OwnerID != "" {
		owner, err := objectID("recipes.list", q.OwnerID)
		if err != nil {
			return nil, err
		}
		filter["created_by"] = owner
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"ingredients": re},
			bson.M{"steps": re},
			bson.M{"category": re},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate("recipes.list", err)
	}
	var docs []recipeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("recipes.list", err)
	}

	recipes := make([]*models.Recipe, 0, len(docs))
	for i := range docs {
		recipes = append(recipes, docs[i].toModel())
	}
	return recipes, nil
}

func (r *recipeRepository) findOne(ctx context.Context, op string, filter bson.M) (*models.Recipe, error) {
	var doc recipeDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(op, err)
	}
	return doc.toModel(), nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	oid, err := objectID("recipes.get", id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, "recipes.get", bson.M{"_id": oid})
}

func (r *recipeRepository) FindByTitle(ctx context.Context, title string) (*models.Recipe, error) {
	return r.findOne(ctx, "recipes.find_by_title", bson.M{"title": title})
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now()
	}
	doc := newRecipeDoc{
		recipeFields: recipeFields{
			Title:       recipe.Title,
			TitleHi:     recipe.TitleHi,
			TitleMr:     recipe.TitleMr,
			Category:    recipe.Category,
			Ingredients: nonNil(recipe.Ingredients),
			Steps:       nonNil(recipe.Steps),
			StepsHi:     nonNil(recipe.StepsHi),
			StepsMr:     nonNil(recipe.StepsMr),
			PrepTime:    recipe.PrepTime,
			CookTime:    recipe.CookTime,
			Servings:    recipe.Servings,
			Image:       recipe.Image,
			CreatedAt:   recipe.CreatedAt,
			Source:      recipe.Source,
		},
		Likes:   []primitive.ObjectID{},
		Ratings: []int{},
		Views:   recipe.Views,
	}
	if recipe.CreatedBy != "" {
		owner, err := objectID("recipes.create", recipe.CreatedBy)
		if err != nil {
			return err
		}
		doc.CreatedBy = &owner
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return translate("recipes.create", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		recipe.ID = oid.Hex()
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *recipeRepository) Update(ctx context.Context, id string, update models.RecipeUpdate) error {
	oid, err := objectID("recipes.update", id)
	if err != nil {
		return err
	}

	set := setFields(update)
	if len(set) == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return translate("recipes.update", err)
		}
		if n == 0 {
			return common.E(common.KindNotFound, "recipes.update", nil)
		}
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return translate("recipes.update", err)
	}
	if res.MatchedCount == 0 {
		return common.E(common.KindNotFound, "recipes.update", nil)
	}
	return nil
}

func setFields(u models.RecipeUpdate) bson.M {
	set := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setList := func(key string, v []string) {
		if v != nil {
			set[key] = v
		}
	}
	setString("title", u.Title)
	setString("title_hi", u.TitleHi)
	setString("title_mr", u.TitleMr)
	setString("category", u.Category)
	setList("ingredients", u.Ingredients)
	setList("steps", u.Steps)
	setList("steps_hi", u.StepsHi)
	setList("steps_mr", u.StepsMr)
	setString("prep_time", u.PrepTime)
	setString("cook_time", u.CookTime)
	setString("image", u.Image)
	if u.Servings != nil {
		set["servings"] = *u.Servings
	}
	return set
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID("recipes.delete", id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate("recipes.delete", err)
	}
	if res.DeletedCount == 0 {
		return common.E(common.KindNotFound, "recipes.delete", nil)
	}
	return nil
}

func (r *recipeRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := objectID("recipes.increment_views", id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return translate("recipes.increment_views", err)
	}
	if res.MatchedCount == 0 {
		return common.E(common.KindNotFound, "recipes.increment_views", nil)
	}
	return nil
}

// ToggleLike runs up to three single-document updates: pull the user, else
// add the user to an existing array, else replace a missing or legacy
// numeric likes field with a one-element array.
func (r *recipeRepository) ToggleLike(ctx context.Context, id, userID string) (models.LikeAction, error) {
	const op = "recipes.toggle_like"
	oid, err := objectID(op, id)
	if err != nil {
		return "", err
	}
	uid, err := objectID(op, userID)
	if err != nil {
		return "", err
	}
	// Some older documents stored liker ids as hex strings.
	member := bson.M{"$in": bson.A{uid, userID}}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "likes": member},
		bson.M{"$pull": bson.M{"likes": member}})
	if err != nil {
		return "", translate(op, err)
	}
	if res.ModifiedCount > 0 {
		return models.Unliked, nil
	}

	res, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "likes": bson.M{"$type": "array"}},
		bson.M{"$addToSet": bson.M{"likes": uid}})
	if err != nil {
		return "", translate(op, err)
	}
	if res.MatchedCount > 0 {
		return models.Liked, nil
	}

	res, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"likes": bson.A{uid}}})
	if err != nil {
		return "", translate(op, err)
	}
	if res.MatchedCount == 0 {
		return "", common.E(common.KindNotFound, op, nil)
	}
	return models.Liked, nil
}

func (r *recipeRepository) AddRating(ctx context.Context, id, _ string, value int) error {
	oid, err := objectID("recipes.add_rating", id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"ratings": value}})
	if err != nil {
		return translate("recipes.add_rating", err)
	}
	if res.MatchedCount == 0 {
		return common.E(common.KindNotFound, "recipes.add_rating", nil)
	}
	return nil
}
