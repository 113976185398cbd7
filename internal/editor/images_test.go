package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedra_admin/internal/models"
)

func writeTempImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("fausse-image"), 0644))
	return path
}

func TestRemoveExistingImageMovesToRemoved(t *testing.T) {
	p := &models.Product{ID: "p1", Images: []string{"a.jpg", "b.jpg"}}
	d := Hydrate(p, Policy{})

	d.RemoveExistingImage(0)

	assert.Equal(t, []string{"b.jpg"}, d.ExistingImages)
	assert.Equal(t, []string{"a.jpg"}, d.RemovedImages)
}

// Une référence est toujours dans exactement une des deux listes
func TestExistingAndRemovedStayDisjoint(t *testing.T) {
	p := &models.Product{ID: "p1", Images: []string{"a.jpg", "b.jpg", "c.jpg"}}
	d := Hydrate(p, Policy{})

	d.RemoveExistingImage(1)
	d.RemoveExistingImage(1)

	assert.Equal(t, []string{"a.jpg"}, d.ExistingImages)
	assert.Equal(t, []string{"b.jpg", "c.jpg"}, d.RemovedImages)

	seen := map[string]bool{}
	for _, ref := range d.ExistingImages {
		seen[ref] = true
	}
	for _, ref := range d.RemovedImages {
		assert.False(t, seen[ref], "référence %s dans les deux listes", ref)
	}
}

func TestAddNewImagesCreatesPreviews(t *testing.T) {
	d := New(Policy{})
	defer d.Discard()

	img1 := writeTempImage(t, "un.jpg")
	img2 := writeTempImage(t, "deux.png")

	previews, err := d.AddNewImages(img1, img2)
	require.NoError(t, err)
	require.Len(t, previews, 2)
	require.Len(t, d.NewImages, 2)

	for i, preview := range previews {
		assert.Equal(t, preview, d.NewImages[i].Preview)
		_, err := os.Stat(preview)
		assert.NoError(t, err, "la prévisualisation doit exister sur disque")
	}
	assert.Equal(t, ".jpg", filepath.Ext(previews[0]))
	assert.Equal(t, ".png", filepath.Ext(previews[1]))
}

func TestRemoveNewImageReleasesPreview(t *testing.T) {
	d := New(Policy{})
	defer d.Discard()

	previews, err := d.AddNewImages(writeTempImage(t, "un.jpg"), writeTempImage(t, "deux.jpg"))
	require.NoError(t, err)

	d.RemoveNewImage(0)

	assert.Len(t, d.NewImages, 1)
	_, err = os.Stat(previews[0])
	assert.True(t, os.IsNotExist(err), "la prévisualisation retirée doit être supprimée")
	_, err = os.Stat(previews[1])
	assert.NoError(t, err, "l'autre prévisualisation reste")
}

func TestDiscardReleasesAllPreviews(t *testing.T) {
	d := New(Policy{})
	previews, err := d.AddNewImages(writeTempImage(t, "un.jpg"), writeTempImage(t, "deux.jpg"))
	require.NoError(t, err)

	d.Discard()

	for _, preview := range previews {
		_, err := os.Stat(preview)
		assert.True(t, os.IsNotExist(err))
	}
	assert.Empty(t, d.NewImages)
}

func TestAddNewImagesMissingFile(t *testing.T) {
	d := New(Policy{})
	defer d.Discard()

	_, err := d.AddNewImages(filepath.Join(t.TempDir(), "absente.jpg"))
	assert.Error(t, err)
	assert.Empty(t, d.NewImages)
}
