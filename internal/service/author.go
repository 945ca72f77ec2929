package service

import (
	"context"

	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
)

const (
	// Management listing labels for recipes whose owner is gone or that
	// were never owned by a user.
	managementMissingOwner = "Admin"
	managementDefaultOwner = "Chef"
)

// authorResolver maps user ids to usernames, remembering each lookup for
// the lifetime of one call so a listing queries every owner once.
type authorResolver struct {
	users store.UserRepository
	names map[string]string
}

func newAuthorResolver(users store.UserRepository) *authorResolver {
	return &authorResolver{users: users, names: map[string]string{}}
}

// lookup returns the username of id and whether it could be resolved.
func (a *authorResolver) lookup(ctx context.Context, id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if name, ok := a.names[id]; ok {
		return name, name != ""
	}
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		a.names[id] = ""
		return "", false
	}
	a.names[id] = user.Username
	return user.Username, true
}

// display is the author shown on listings, details and comments.
func (a *authorResolver) display(ctx context.Context, id string) string {
	if name, ok := a.lookup(ctx, id); ok {
		return name
	}
	return models.UnknownAuthor
}

// management is the author shown on the recipe management listing.
func (a *authorResolver) management(ctx context.Context, r *models.Recipe) string {
	if r.CreatedBy != "" {
		if name, ok := a.lookup(ctx, r.CreatedBy); ok {
			return name
		}
		return managementMissingOwner
	}
	if r.Source != "" {
		return r.Source
	}
	return managementDefaultOwner
}
