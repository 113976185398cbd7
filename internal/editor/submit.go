package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"cedra_admin/internal/models"
)

// Les noms de champs du multipart sont le contrat de câblage avec le
// backend — ne pas les renommer.
const (
	fieldName           = "name"
	fieldCategory       = "category"
	fieldDescription    = "description"
	fieldPrice          = "price"
	fieldTags           = "tags"
	fieldVariants       = "variants"
	fieldExistingImages = "existingImages"
	fieldRemovedImages  = "removedImages"
	fieldImages         = "images"
)

// BuildPayload - sérialise le brouillon en corps multipart :
// champs scalaires en texte, tags/variantes/images existantes/retirées en
// JSON-texte (décodés côté serveur), et chaque nouveau fichier en partie
// binaire sous le champ partagé "images".
func (d *Draft) BuildPayload() (contentType string, body *bytes.Buffer, err error) {
	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		fieldName:        d.Name,
		fieldCategory:    d.Category,
		fieldDescription: d.Description,
		fieldPrice:       d.Price,
	}
	for _, name := range []string{fieldName, fieldCategory, fieldDescription, fieldPrice} {
		if err := w.WriteField(name, fields[name]); err != nil {
			return "", nil, err
		}
	}

	if err := writeJSONField(w, fieldTags, normalizeTags(d.Tags)); err != nil {
		return "", nil, err
	}
	variants := d.Variants
	if variants == nil {
		variants = []models.Variant{}
	}
	if err := writeJSONField(w, fieldVariants, variants); err != nil {
		return "", nil, err
	}
	if err := writeJSONField(w, fieldExistingImages, emptyIfNil(d.ExistingImages)); err != nil {
		return "", nil, err
	}
	if err := writeJSONField(w, fieldRemovedImages, emptyIfNil(d.RemovedImages)); err != nil {
		return "", nil, err
	}

	for _, img := range d.NewImages {
		if err := writeFilePart(w, img.Path); err != nil {
			return "", nil, err
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), body, nil
}

// normalizeTags - contrat de compatibilité : un élément qui contient
// des virgules est une chaîne jointe héritée, on la découpe; tout est
// trimé. Voir models.TagList pour la même tolérance au décodage.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if strings.Contains(t, ",") {
			out = append(out, models.SplitTags(t)...)
			continue
		}
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// writeJSONField - un blob JSON transporté comme champ texte,
// opaque pour le multipart
func writeJSONField(w *multipart.Writer, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sérialisation %s: %w", name, err)
	}
	return w.WriteField(name, string(data))
}

func writeFilePart(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ouverture image %s: %w", path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(fieldImages, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("lecture image %s: %w", path, err)
	}
	return nil
}
