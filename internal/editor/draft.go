// Package editor porte la session d'édition d'un produit côté admin :
// le brouillon (Draft), les éditeurs de tags et de variantes, la gestion
// des images existantes/retirées/nouvelles, et l'assemblage du multipart
// envoyé au backend.
package editor

import (
	"fmt"

	"cedra_admin/internal/models"
)

// Policy - règles d'édition configurables. MinVariants > 0 empêche de
// descendre sous ce nombre de variantes; le backend actuel n'impose rien,
// donc 0 par défaut.
type Policy struct {
	MinVariants int
}

// Draft - l'état en mémoire d'un produit en cours de création ou d'édition.
// Un brouillon se jette (succès ou annulation), il ne se sauvegarde jamais
// à moitié.
type Draft struct {
	identity string // vide => création, sinon ID du produit édité

	Name        string
	Description string
	Price       string
	Category    string // ID de la catégorie

	Tags     []string
	TagInput string // saisie de tag pas encore validée

	Variants []models.Variant

	ExistingImages []string   // références serveur présentes à l'ouverture
	RemovedImages  []string   // références sorties d'ExistingImages pendant la session
	NewImages      []NewImage // fichiers locaux, jamais mélangés aux références serveur

	previews *previewStore
	policy   Policy
}

// New - brouillon vide pour le flux de création
func New(policy Policy) *Draft {
	return &Draft{
		Tags:           []string{},
		Variants:       []models.Variant{},
		ExistingImages: []string{},
		RemovedImages:  []string{},
		previews:       newPreviewStore(),
		policy:         policy,
	}
}

// Hydrate - brouillon pré-rempli depuis un produit récupéré du backend.
// ExistingImages part de la liste stockée; NewImages et RemovedImages
// démarrent vides.
func Hydrate(p *models.Product, policy Policy) *Draft {
	d := New(policy)
	d.identity = p.ID
	d.Name = p.Name
	d.Description = p.Description
	d.Price = p.Price
	d.Category = p.Category.ID
	d.Tags = append(d.Tags, p.Tags...)
	d.Variants = append(d.Variants, p.Variants...)
	d.ExistingImages = append(d.ExistingImages, p.Images...)
	return d
}

// Identity - ID du produit édité, vide en création. Immuable : éditer un
// autre produit passe par un nouveau brouillon.
func (d *Draft) Identity() string {
	return d.identity
}

func (d *Draft) IsEditing() bool {
	return d.identity != ""
}

// SetField - remplace un champ scalaire, sans validation (le backend
// valide). Un nom de champ inconnu est une erreur de programmation.
func (d *Draft) SetField(name, value string) {
	switch name {
	case "name":
		d.Name = value
	case "description":
		d.Description = value
	case "price":
		d.Price = value
	case "category":
		d.Category = value
	default:
		panic(fmt.Sprintf("editor: champ inconnu %q", name))
	}
}

// Reset - retour à la forme vide de création. Les prévisualisations
// acquises sont libérées.
func (d *Draft) Reset() {
	d.previews.ReleaseAll()
	d.Name = ""
	d.Description = ""
	d.Price = ""
	d.Category = ""
	d.Tags = []string{}
	d.TagInput = ""
	d.Variants = []models.Variant{}
	d.ExistingImages = []string{}
	d.RemovedImages = []string{}
	d.NewImages = nil
}

// Discard - fin de vie du brouillon : libère toutes les ressources locales
func (d *Draft) Discard() {
	d.previews.ReleaseAll()
	d.NewImages = nil
}
