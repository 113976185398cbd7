package api

import (
	"context"

	"cedra_admin/internal/models"
)

func (c *Client) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
