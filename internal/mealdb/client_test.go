package mealdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paneerResponse = `{"meals":[{
	"idMeal":"52807",
	"strMeal":"Paneer Tikka",
	"strCategory":"Starter",
	"strInstructions":"Cube the paneer.\r\nMarinate for an hour.\r\n\r\nGrill until charred.",
	"strMealThumb":"https://www.themealdb.com/images/media/meals/paneer.jpg",
	"strIngredient1":"Paneer","strMeasure1":"250g",
	"strIngredient2":" Yogurt ","strMeasure2":" 1 cup ",
	"strIngredient3":"Salt","strMeasure3":null,
	"strIngredient4":"","strMeasure4":"",
	"strIngredient5":null,"strMeasure5":null
}]}`

func TestSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		gotQuery = r.URL.Query().Get("s")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(paneerResponse))
	}))
	defer srv.Close()

	meals, err := NewClient(srv.URL+"/").Search(context.Background(), "Paneer")
	require.NoError(t, err)
	assert.Equal(t, "Paneer", gotQuery)
	require.Len(t, meals, 1)
	assert.Equal(t, "Paneer Tikka", meals[0].Name)
	assert.Equal(t, "Paneer", meals[0].Ingredients[0])
	assert.Equal(t, "", meals[0].Measures[2])
	assert.Len(t, meals[0].Ingredients, 20)
}

func TestSearchNoMeals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	defer srv.Close()

	meals, err := NewClient(srv.URL).Search(context.Background(), "Nothing")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), "Chicken")
	assert.Error(t, err)
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").baseURL)
}
