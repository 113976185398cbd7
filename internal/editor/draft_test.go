package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedra_admin/internal/models"
)

func TestAddTagTrimsAndClearsInput(t *testing.T) {
	d := New(Policy{})

	d.SetTagInput("shoes")
	d.AddTag()
	d.SetTagInput(" running ")
	d.AddTag()

	assert.Equal(t, []string{"shoes", "running"}, d.Tags)
	assert.Equal(t, "", d.TagInput)
}

func TestAddTagIgnoresBlankInput(t *testing.T) {
	d := New(Policy{})

	d.SetTagInput("")
	d.AddTag()
	d.SetTagInput("   ")
	d.AddTag()

	assert.Empty(t, d.Tags)
}

// La longueur finale vaut (ajouts non vides) moins (retraits), et l'ordre
// relatif d'insertion est conservé.
func TestTagAddRemoveSequence(t *testing.T) {
	d := New(Policy{})
	for _, tag := range []string{"a", "b", "c", "d"} {
		d.SetTagInput(tag)
		d.AddTag()
	}

	d.RemoveTag(1) // retire "b"
	assert.Equal(t, []string{"a", "c", "d"}, d.Tags)

	d.RemoveTag(0) // retire "a"
	assert.Equal(t, []string{"c", "d"}, d.Tags)
}

func TestRemoveTagOutOfRangePanics(t *testing.T) {
	d := New(Policy{})
	assert.Panics(t, func() { d.RemoveTag(0) })
}

func TestSetTagsRaw(t *testing.T) {
	d := New(Policy{})
	d.SetTagsRaw("shoes, running , ")
	assert.Equal(t, []string{"shoes", "running"}, d.Tags)
}

func TestSetFieldScalars(t *testing.T) {
	d := New(Policy{})
	d.SetField("name", "Basket")
	d.SetField("category", "cat-1")
	d.SetField("price", "49.90")
	d.SetField("description", "Basket légère")

	assert.Equal(t, "Basket", d.Name)
	assert.Equal(t, "cat-1", d.Category)
	assert.Equal(t, "49.90", d.Price)
	assert.Equal(t, "Basket légère", d.Description)
}

func TestSetFieldUnknownPanics(t *testing.T) {
	d := New(Policy{})
	assert.Panics(t, func() { d.SetField("rating", "5") })
}

func TestHydrateSeedsExistingImagesOnly(t *testing.T) {
	p := &models.Product{
		ID:          "p1",
		Name:        "Basket",
		Description: "desc",
		Price:       "10",
		Category:    models.Category{ID: "cat-1", Name: "Chaussures"},
		Tags:        models.TagList{"shoes"},
		Variants:    []models.Variant{{Color: "rouge", Price: "10", Stock: "3"}},
		Images:      []string{"/a.jpg", "/b.jpg"},
	}

	d := Hydrate(p, Policy{})

	assert.Equal(t, "p1", d.Identity())
	assert.True(t, d.IsEditing())
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, d.ExistingImages)
	assert.Empty(t, d.RemovedImages)
	assert.Empty(t, d.NewImages)
	assert.Equal(t, "cat-1", d.Category)

	// L'hydratation copie les listes : modifier le brouillon ne touche
	// pas le produit d'origine
	d.RemoveExistingImage(0)
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, p.Images)
}

func TestResetReturnsToCreateShape(t *testing.T) {
	p := &models.Product{ID: "p1", Name: "Basket", Images: []string{"/a.jpg"}}
	d := Hydrate(p, Policy{})
	d.SetTagInput("x")
	d.AddTag()
	d.AddVariant()
	d.RemoveExistingImage(0)

	d.Reset()

	assert.Equal(t, "", d.Name)
	assert.Empty(t, d.Tags)
	assert.Empty(t, d.Variants)
	assert.Empty(t, d.ExistingImages)
	assert.Empty(t, d.RemovedImages)
	assert.Empty(t, d.NewImages)
	// L'identité reste : Reset vide le formulaire, il ne change pas de
	// produit cible
	require.Equal(t, "p1", d.Identity())
}
