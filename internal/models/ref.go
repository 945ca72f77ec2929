package models

import "strings"

const sampleIDPrefix = "sample"

// RecipeRef identifies a recipe either in the store or in the compiled-in
// sample catalog. It is one of StoredRef or SampleRef.
type RecipeRef interface {
	ID() string
	isRecipeRef()
}

// StoredRef points at a recipe held by the backing store.
type StoredRef struct{ RecipeID string }

// SampleRef points at an entry of the sample catalog.
type SampleRef struct{ SampleID string }

func (r StoredRef) ID() string { return r.RecipeID }
func (StoredRef) isRecipeRef() {}

func (r SampleRef) ID() string { return r.SampleID }
func (SampleRef) isRecipeRef() {}

// ParseRecipeRef classifies a raw id taken from a URL or form.
func ParseRecipeRef(raw string) RecipeRef {
	if strings.HasPrefix(raw, sampleIDPrefix) {
		return SampleRef{SampleID: raw}
	}
	return StoredRef{RecipeID: raw}
}

// IsSample reports whether ref refers to the sample catalog.
func IsSample(ref RecipeRef) bool {
	_, ok := ref.(SampleRef)
	return ok
}
