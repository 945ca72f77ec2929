// Package sqlstore implements the store ports on top of gorm, for postgres
// and sqlite deployments.
package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/store"
)

// Backend is a gorm-backed store.Backend.
type Backend struct {
	db       *gorm.DB
	users    *userRepository
	recipes  *recipeRepository
	comments *commentRepository
}

var _ store.Backend = (*Backend)(nil)

// New wraps an open gorm connection. Call Migrate first on a fresh database.
func New(db *gorm.DB) *Backend {
	return &Backend{
		db:       db,
		users:    &userRepository{db: db},
		recipes:  &recipeRepository{db: db},
		comments: &commentRepository{db: db},
	}
}

// Migrate creates or updates the tables used by the backend.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRow{}, &recipeRow{}, &likeRow{}, &ratingRow{}, &commentRow{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (b *Backend) Name() string                      { return b.db.Dialector.Name() }
func (b *Backend) Available() bool                   { return true }
func (b *Backend) Users() store.UserRepository       { return b.users }
func (b *Backend) Recipes() store.RecipeRepository   { return b.recipes }
func (b *Backend) Comments() store.CommentRepository { return b.comments }

// Migrate runs Migrate on the backend's connection.
func (b *Backend) Migrate(ctx context.Context) error {
	return Migrate(b.db.WithContext(ctx))
}

func (b *Backend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (b *Backend) Close(_ context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// parseID validates a primary key before it reaches the database.
func parseID(op, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.E(common.KindMalformedID, op, err)
	}
	return nil
}

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.E(common.KindNotFound, op, nil)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) || strings.Contains(err.Error(), "database is closed") {
		return common.E(common.KindStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, case folded.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
