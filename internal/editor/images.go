package editor

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// NewImage - un fichier local sélectionné pour l'upload, avec sa
// prévisualisation. Le chemin de prévisualisation n'est jamais transmis
// au backend, il ne sert qu'à l'affichage.
type NewImage struct {
	Path    string
	Preview string
}

// AddNewImages - ajoute des fichiers locaux à NewImages et crée pour
// chacun une prévisualisation (équivalent des object URLs du navigateur).
// Retourne les chemins de prévisualisation dans le même ordre.
func (d *Draft) AddNewImages(paths ...string) ([]string, error) {
	previews := make([]string, 0, len(paths))
	for _, p := range paths {
		preview, err := d.previews.Acquire(p)
		if err != nil {
			return previews, err
		}
		d.NewImages = append(d.NewImages, NewImage{Path: p, Preview: preview})
		previews = append(previews, preview)
	}
	return previews, nil
}

// RemoveNewImage - retire le fichier à l'index donné et libère sa
// prévisualisation
func (d *Draft) RemoveNewImage(i int) {
	d.previews.Release(d.NewImages[i].Preview)
	d.NewImages = append(d.NewImages[:i], d.NewImages[i+1:]...)
}

// RemoveExistingImage - déplace la référence d'ExistingImages vers
// RemovedImages. Pas de retour en arrière : pour la récupérer il faut
// jeter le brouillon et ré-hydrater.
func (d *Draft) RemoveExistingImage(i int) {
	ref := d.ExistingImages[i]
	d.ExistingImages = append(d.ExistingImages[:i], d.ExistingImages[i+1:]...)
	d.RemovedImages = append(d.RemovedImages, ref)
}

// previewStore - possède les fichiers de prévisualisation. Acquis à la
// sélection, libérés au retrait ou à la fin de session, sinon on fuit
// du disque à chaque ouverture/fermeture de l'éditeur.
type previewStore struct {
	dir   string
	paths map[string]bool
}

func newPreviewStore() *previewStore {
	return &previewStore{paths: map[string]bool{}}
}

func (s *previewStore) Acquire(srcPath string) (string, error) {
	if s.dir == "" {
		dir, err := os.MkdirTemp("", "cedra-preview-")
		if err != nil {
			return "", fmt.Errorf("création du dossier de prévisualisation: %w", err)
		}
		s.dir = dir
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("ouverture image %s: %w", srcPath, err)
	}
	defer src.Close()

	preview := filepath.Join(s.dir, uuid.NewString()+filepath.Ext(srcPath))
	dst, err := os.Create(preview)
	if err != nil {
		return "", fmt.Errorf("création prévisualisation: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(preview)
		return "", fmt.Errorf("copie prévisualisation: %w", err)
	}

	s.paths[preview] = true
	return preview, nil
}

func (s *previewStore) Release(preview string) {
	if !s.paths[preview] {
		return
	}
	delete(s.paths, preview)
	if err := os.Remove(preview); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Prévisualisation non supprimée %s: %v", preview, err)
	}
}

func (s *previewStore) ReleaseAll() {
	for p := range s.paths {
		s.Release(p)
	}
	if s.dir != "" {
		os.Remove(s.dir)
		s.dir = ""
	}
}
