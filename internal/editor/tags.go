package editor

import (
	"strings"

	"cedra_admin/internal/models"
)

// SetTagInput - met à jour la saisie en attente (le champ texte à côté du +)
func (d *Draft) SetTagInput(s string) {
	d.TagInput = s
}

// AddTag - valide la saisie en attente : trim, ajout si non vide, puis la
// saisie est vidée. Une saisie blanche ne fait rien, ce n'est pas une erreur.
func (d *Draft) AddTag() {
	tag := strings.TrimSpace(d.TagInput)
	if tag == "" {
		return
	}
	d.Tags = append(d.Tags, tag)
	d.TagInput = ""
}

// RemoveTag - retire le tag à l'index donné en décalant la suite.
// Un index hors bornes est une erreur de programmation (l'UI ne propose
// que des index valides) : on laisse le runtime paniquer.
func (d *Draft) RemoveTag(i int) {
	d.Tags = append(d.Tags[:i], d.Tags[i+1:]...)
}

// SetTagsRaw - remplace les tags depuis une chaîne "a, b, c"
// (forme héritée des anciens écrans)
func (d *Draft) SetTagsRaw(joined string) {
	d.Tags = models.SplitTags(joined)
}
