package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Le backend renvoie les tags tantôt en tableau JSON, tantôt en chaîne
// jointe selon sa version — les deux doivent se décoder pareil.
func TestTagListDualShape(t *testing.T) {
	tests := []struct {
		name string
		json string
		want TagList
	}{
		{"tableau", `["shoes","running"]`, TagList{"shoes", "running"}},
		{"chaine jointe", `"shoes, running"`, TagList{"shoes", "running"}},
		{"chaine avec blancs", `" shoes ,  running,"`, TagList{"shoes", "running"}},
		{"tableau vide", `[]`, TagList{}},
		{"chaine vide", `""`, TagList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TagList
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagListRejectsOtherShapes(t *testing.T) {
	var got TagList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitTags("a, b ,c"))
	assert.Empty(t, SplitTags(" , ,"))
	assert.Empty(t, SplitTags(""))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "http://localhost:5000/uploads/p1.jpg", ImageURL("http://localhost:5000", "/p1.jpg"))
	assert.Equal(t, "http://localhost:5000/uploads/p1.jpg", ImageURL("http://localhost:5000/", "p1.jpg"))
	// Une référence déjà absolue n'est pas réécrite
	assert.Equal(t, "https://cdn.cedra.test/p1.jpg", ImageURL("http://localhost:5000", "https://cdn.cedra.test/p1.jpg"))
	assert.Equal(t, "", ImageURL("http://localhost:5000", ""))
}
