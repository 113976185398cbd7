package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"cedra_admin/internal/models"
)

func (c *Client) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.get(ctx, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory - nom + image optionnelle, en multipart comme le produit
func (c *Client) CreateCategory(ctx context.Context, name, imagePath string) (*models.Category, error) {
	contentType, body, err := categoryForm(name, imagePath)
	if err != nil {
		return nil, err
	}
	var cat models.Category
	if err := c.sendMultipart(ctx, http.MethodPost, "/categories", contentType, body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id, name, imagePath string) (*models.Category, error) {
	contentType, body, err := categoryForm(name, imagePath)
	if err != nil {
		return nil, err
	}
	var cat models.Category
	if err := c.sendMultipart(ctx, http.MethodPut, "/categories/"+id, contentType, body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/categories/"+id, nil)
}

func categoryForm(name, imagePath string) (string, io.Reader, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", name); err != nil {
		return "", nil, err
	}

	if imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			return "", nil, fmt.Errorf("ouverture image %s: %w", imagePath, err)
		}
		defer f.Close()

		part, err := w.CreateFormFile("image", filepath.Base(imagePath))
		if err != nil {
			return "", nil, err
		}
		if _, err := io.Copy(part, f); err != nil {
			return "", nil, fmt.Errorf("lecture image %s: %w", imagePath, err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), &buf, nil
}
