package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/mealdb"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
)

// SeedAdminUsername owns recipes loaded from a seed file when that account
// exists.
const SeedAdminUsername = "admin"

const seedSource = "Standard Seed"

var mealDBSearchTerms = []string{"Chicken", "Paneer", "Pasta", "Curry", "Cake"}

// MealSearcher finds meals by name.
type MealSearcher interface {
	Search(ctx context.Context, term string) ([]mealdb.Meal, error)
}

type recipeImporter interface {
	Import(ctx context.Context, recipe *models.Recipe) (bool, error)
}

// ImportService loads recipes from TheMealDB and from seed files. Titles
// already in the store are skipped.
type ImportService struct {
	recipes recipeImporter
	users   store.UserRepository
	meals   MealSearcher
}

func NewImportService(recipes recipeImporter, users store.UserRepository, meals MealSearcher) *ImportService {
	return &ImportService{recipes: recipes, users: users, meals: meals}
}

// ImportMealDB imports up to limit new recipes. A failing search term is
// skipped; an unavailable store aborts the import.
func (s *ImportService) ImportMealDB(ctx context.Context, limit int) (int, error) {
	logger := logging.For("import")
	count := 0

	for _, term := range mealDBSearchTerms {
		if count >= limit {
			break
		}
		meals, err := s.meals.Search(ctx, term)
		if err != nil {
			logger.WithError(err).WithField("term", term).Error("Failed to fetch meals")
			continue
		}

		for _, meal := range meals {
			if count >= limit {
				break
			}
			added, err := s.recipes.Import(ctx, mealdb.ToRecipe(meal))
			if err != nil {
				if errors.Is(err, common.ErrStoreUnavailable) {
					return count, err
				}
				logger.WithError(err).WithField("title", meal.Name).Warn("Failed to import meal")
				continue
			}
			if added {
				count++
			}
		}
	}

	logger.WithField("count", count).Info("MealDB import finished")
	return count, nil
}

// ImportSeed reads a JSON array of seed recipes from r.
func (s *ImportService) ImportSeed(ctx context.Context, r io.Reader) (int, error) {
	var items []seedItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	ownerID := ""
	admin, err := s.users.GetByUsername(ctx, SeedAdminUsername)
	switch {
	case err == nil:
		ownerID = admin.ID
	case !errors.Is(err, common.ErrNotFound):
		return 0, err
	}

	logger := logging.For("import")
	count := 0
	for _, item := range items {
		if item.Title == "" {
			logger.Warn("Skipping seed entry without a title")
			continue
		}
		added, err := s.recipes.Import(ctx, item.toRecipe(ownerID))
		if err != nil {
			return count, fmt.Errorf("failed to import %q: %w", item.Title, err)
		}
		if added {
			count++
			logger.WithField("title", item.Title).Debug("Seed recipe added")
		}
	}

	logger.WithField("count", count).Info("Seed import finished")
	return count, nil
}

type seedItem struct {
	Title          string    `json:"title"`
	TitleHi        string    `json:"title_hi"`
	TitleMr        string    `json:"title_mr"`
	Category       string    `json:"category"`
	Ingredients    []string  `json:"ingredients"`
	Instructions   stepsText `json:"instructions"`
	InstructionsHi stepsText `json:"instructions_hi"`
	InstructionsMr stepsText `json:"instructions_mr"`
	StepsHi        []string  `json:"steps_hi"`
	StepsMr        []string  `json:"steps_mr"`
	PrepTime       string    `json:"prep_time"`
	CookTime       string    `json:"cook_time"`
	Servings       *int      `json:"servings"`
	Image          string    `json:"image"`
	Source         string    `json:"source"`
}

func (it seedItem) toRecipe(ownerID string) *models.Recipe {
	r := &models.Recipe{
		Title:       it.Title,
		TitleHi:     it.TitleHi,
		TitleMr:     it.TitleMr,
		Category:    orDefault(it.Category, "veg"),
		Ingredients: it.Ingredients,
		Steps:       nonNil(it.Instructions),
		StepsHi:     nonNil(it.StepsHi),
		StepsMr:     nonNil(it.StepsMr),
		PrepTime:    orDefault(it.PrepTime, "15 mins"),
		CookTime:    orDefault(it.CookTime, "25 mins"),
		Servings:    4,
		Image:       it.Image,
		CreatedBy:   ownerID,
		Source:      orDefault(it.Source, seedSource),
	}
	if it.Ingredients == nil {
		r.Ingredients = []string{"Various high-quality ingredients"}
	}
	if len(it.InstructionsHi) > 0 {
		r.StepsHi = it.InstructionsHi
	}
	if len(it.InstructionsMr) > 0 {
		r.StepsMr = it.InstructionsMr
	}
	if it.Servings != nil {
		r.Servings = *it.Servings
	}
	return r
}

// stepsText accepts either a list of steps or a paragraph whose sentences
// become the steps.
type stepsText []string

func (s *stepsText) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = splitSentences(text)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("instructions must be a string or a list of strings: %w", err)
	}
	*s = list
	return nil
}

func splitSentences(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ".") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
