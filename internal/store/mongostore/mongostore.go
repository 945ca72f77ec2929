// Package mongostore implements the store ports on MongoDB. Collection and
// field names match the documents written by earlier versions of the app.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/store"
)

const (
	usersCollection    = "users"
	recipesCollection  = "recipes"
	commentsCollection = "comments"
)

// Backend is a MongoDB-backed store.Backend.
type Backend struct {
	db       *mongo.Database
	users    *userRepository
	recipes  *recipeRepository
	comments *commentRepository
}

var _ store.Backend = (*Backend)(nil)

func New(db *mongo.Database) *Backend {
	return &Backend{
		db:       db,
		users:    &userRepository{coll: db.Collection(usersCollection)},
		recipes:  &recipeRepository{coll: db.Collection(recipesCollection)},
		comments: &commentRepository{coll: db.Collection(commentsCollection)},
	}
}

func (b *Backend) Name() string                      { return "mongodb" }
func (b *Backend) Available() bool                   { return true }
func (b *Backend) Users() store.UserRepository       { return b.users }
func (b *Backend) Recipes() store.RecipeRepository   { return b.recipes }
func (b *Backend) Comments() store.CommentRepository { return b.comments }

// Database exposes the underlying database handle.
func (b *Backend) Database() *mongo.Database { return b.db }

func (b *Backend) Ping(ctx context.Context) error {
	return b.db.Client().Ping(ctx, readpref.Primary())
}

func (b *Backend) Close(ctx context.Context) error {
	return b.db.Client().Disconnect(ctx)
}

// Migrate creates the indexes the repositories rely on. Unique
// indexes can fail on databases that already hold duplicates; that is
// logged and the remaining indexes are still created.
func (b *Backend) Migrate(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		recipesCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "title", Value: 1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "recipe_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	var errs []error
	for coll, indexes := range specs {
		for _, m := range indexes {
			if _, err := b.db.Collection(coll).Indexes().CreateOne(ctx, m); err != nil {
				log.WithError(err).WithField("collection", coll).Warn("failed to create index")
				errs = append(errs, fmt.Errorf("%s: %w", coll, err))
			}
		}
	}
	return errors.Join(errs...)
}

func objectID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.E(common.KindMalformedID, op, err)
	}
	return oid, nil
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.E(common.KindNotFound, op, nil)
	case errors.Is(err, mongo.ErrClientDisconnected):
		return common.E(common.KindStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
