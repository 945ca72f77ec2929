package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/models"
)

type userRepository struct {
	coll *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	doc := userDoc{
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Language:  user.Language,
		Theme:     user.Theme,
		CreatedAt: user.CreatedAt,
		Favorites: []primitive.ObjectID{},
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.duplicateKind(ctx, user.Username, err)
		}
		return translate("users.create", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

func (r *userRepository) duplicateKind(ctx context.Context, username string, cause error) error {
	n, _ := r.coll.CountDocuments(ctx, bson.M{"username": username})
	if n > 0 {
		return common.E(common.KindDuplicateUsername, "users.create", cause)
	}
	return common.E(common.KindDuplicateEmail, "users.create", cause)
}

func (r *userRepository) findOne(ctx context.Context, op string, filter bson.M) (*models.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(op, err)
	}
	return doc.toModel(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID("users.get", id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, "users.get", bson.M{"_id": oid})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "users.get_by_username", bson.M{"username": username})
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	return r.findOne(ctx, "users.find", bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
}

func (r *userRepository) UpdateSettings(ctx context.Context, id string, settings models.UserSettings) error {
	oid, err := objectID("users.update_settings", id)
	if err != nil {
		return err
	}
	set := bson.M{}
	if settings.Language != "" {
		set["language"] = settings.Language
	}
	if settings.Theme != "" {
		set["theme"] = settings.Theme
	}
	if len(set) == 0 {
		return common.E(common.KindNoChanges, "users.update_settings", nil)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return translate("users.update_settings", err)
	}
	if res.MatchedCount == 0 {
		return common.E(common.KindNotFound, "users.update_settings", nil)
	}
	return nil
}
