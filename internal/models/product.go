package models

import (
	"encoding/json"
	"strings"
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Category    Category  `json:"category"`
	Tags        TagList   `json:"tags"`
	Variants    []Variant `json:"variants"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Variant - une combinaison couleur/prix/stock d'un produit.
// Tout est texte à ce niveau : c'est le backend qui valide les nombres.
type Variant struct {
	Color string `json:"color"`
	Price string `json:"price"`
	Stock string `json:"stock"`
}

// TagList accepte les deux formes renvoyées par le backend selon sa version :
// un tableau JSON de chaînes, ou une seule chaîne "a, b, c" à découper.
// Ne pas simplifier en []string — la compatibilité en dépend.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = arr
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*t = SplitTags(joined)
	return nil
}

// SplitTags - découpe une chaîne "a, b ,c" en tags nettoyés.
// Les morceaux vides sont ignorés.
func SplitTags(joined string) []string {
	parts := strings.Split(joined, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
