package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCatalog(t *testing.T) {
	c := NewSampleCatalog()

	all := c.All()
	require.Len(t, all, 4)
	for _, r := range all {
		assert.True(t, r.Sample)
		assert.NotEmpty(t, r.Author)
		assert.Len(t, r.Steps, 5)
		assert.Len(t, r.Ingredients, 5)
	}

	paneer, ok := c.Get("sample1")
	require.True(t, ok)
	assert.Equal(t, "Paneer Butter Masala", paneer.Title)
	assert.Equal(t, 4.8, paneer.AverageRating())
	assert.Equal(t, 2, paneer.LikeCount())
	assert.Equal(t, 1520, paneer.Views)
	assert.Equal(t, "Vegetarian", paneer.CategoryName())

	jamun, ok := c.Get("sample4")
	require.True(t, ok)
	assert.Equal(t, 4.2, jamun.AverageRating())
	assert.Equal(t, "Desserts", jamun.CategoryName())

	_, ok = c.Get("sample5")
	assert.False(t, ok)

	all[0].Title = "changed"
	again, _ := c.Get("sample1")
	assert.Equal(t, "Paneer Butter Masala", again.Title)
	assert.Equal(t, all[1].CreatedAt, again.CreatedAt)
}
