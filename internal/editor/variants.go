package editor

import (
	"errors"
	"fmt"

	"cedra_admin/internal/models"
)

var ErrMinVariants = errors.New("le nombre minimum de variantes est atteint")

// AddVariant - ajoute une ligne vide en fin de liste
func (d *Draft) AddVariant() {
	d.Variants = append(d.Variants, models.Variant{})
}

// UpdateVariant - remplace une cellule en place. Pas de coercion numérique
// ici, le backend valide. Champ inconnu ou index hors bornes : erreur de
// programmation, on panique.
func (d *Draft) UpdateVariant(i int, field, value string) {
	switch field {
	case "color":
		d.Variants[i].Color = value
	case "price":
		d.Variants[i].Price = value
	case "stock":
		d.Variants[i].Stock = value
	default:
		panic(fmt.Sprintf("editor: champ de variante inconnu %q", field))
	}
}

// RemoveVariant - retire la ligne à l'index donné. Refuse de descendre
// sous Policy.MinVariants quand la politique est active.
func (d *Draft) RemoveVariant(i int) error {
	if d.policy.MinVariants > 0 && len(d.Variants) <= d.policy.MinVariants {
		return ErrMinVariants
	}
	d.Variants = append(d.Variants[:i], d.Variants[i+1:]...)
	return nil
}
