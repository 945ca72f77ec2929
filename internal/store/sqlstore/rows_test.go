package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/internal/models"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList{"Salt & Pepper", "Bread <white>"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Salt & Pepper","Bread <white>"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var back StringList
	require.NoError(t, back.Scan(`["Salt & Pepper","Bread <white>"]`))
	assert.Equal(t, StringList{"Salt & Pepper", "Bread <white>"}, back)
}

func TestSearchText(t *testing.T) {
	assert.Equal(t, "Salt & Pepper\nBread", searchText([]string{"Salt & Pepper", "Bread"}))
	assert.Equal(t, "", searchText(nil))
}

func TestUpdateColumnsKeepsSearchTextInSync(t *testing.T) {
	cols := updateColumns(models.RecipeUpdate{Ingredients: []string{"A & B", "C"}})
	assert.Equal(t, "A & B\nC", cols["ingredients_text"])
	_, ok := cols["steps_text"]
	assert.False(t, ok)
}
