package api

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"cedra_admin/internal/models"
)

// Nombre maximum de fiches produit récupérées en parallèle pour
// l'écran commandes
const orderDetailParallelism = 8

type ordersResponse struct {
	Orders []models.Order `json:"orders"`
}

func (c *Client) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var out ordersResponse
	if err := c.get(ctx, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// OrdersWithProducts - la liste des commandes plus le détail de chaque
// produit référencé. Les IDs sont dédupliqués puis récupérés en parallèle;
// un produit introuvable n'annule pas l'écran, il manque juste sa fiche.
func (c *Client) OrdersWithProducts(ctx context.Context) ([]models.Order, map[string]*models.Product, error) {
	orders, err := c.GetAllOrders(ctx)
	if err != nil {
		return nil, nil, err
	}

	seen := map[string]bool{}
	var ids []string
	for _, o := range orders {
		for _, line := range o.Products {
			if line.ProductID != "" && !seen[line.ProductID] {
				seen[line.ProductID] = true
				ids = append(ids, line.ProductID)
			}
		}
	}

	details := make(map[string]*models.Product, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(orderDetailParallelism)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			p, err := c.GetProduct(gctx, id)
			if err != nil {
				log.Printf("⚠️ Détail produit %s indisponible: %v", id, err)
				return nil
			}
			mu.Lock()
			details[id] = p
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return orders, details, nil
}
