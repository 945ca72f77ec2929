package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/smartchef/backend/internal/models"
)

type commentRepository struct {
	coll *mongo.Collection
}

func (r *commentRepository) ListByRecipe(ctx context.Context, recipeID string) ([]*models.Comment, error) {
	oid, err := objectID("comments.list", recipeID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"recipe_id": oid}, opts)
	if err != nil {
		return nil, translate("comments.list", err)
	}
	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("comments.list", err)
	}

	comments := make([]*models.Comment, 0, len(docs))
	for i := range docs {
		comments = append(comments, docs[i].toModel())
	}
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	rid, err := objectID("comments.create", comment.RecipeID)
	if err != nil {
		return err
	}
	uid, err := objectID("comments.create", comment.UserID)
	if err != nil {
		return err
	}
	doc := commentDoc{RecipeID: rid, UserID: uid, Text: comment.Text, CreatedAt: comment.CreatedAt}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return translate("comments.create", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid.Hex()
	}
	return nil
}
