package api

import (
	"context"
	"log"
)

// Counts - les tuiles du tableau de bord. Un compteur dont la liste
// est indisponible vaut -1 plutôt que de faire échouer tout l'écran.
type Counts struct {
	Products int
	Users    int
	Orders   int
}

func (c *Client) DashboardCounts(ctx context.Context) Counts {
	counts := Counts{Products: -1, Users: -1, Orders: -1}

	if products, err := c.GetAllProducts(ctx, Filter{}); err == nil {
		counts.Products = len(products)
	} else {
		log.Printf("⚠️ Comptage produits impossible: %v", err)
	}

	if users, err := c.GetAllUsers(ctx); err == nil {
		counts.Users = len(users)
	} else {
		log.Printf("⚠️ Comptage utilisateurs impossible: %v", err)
	}

	if orders, err := c.GetAllOrders(ctx); err == nil {
		counts.Orders = len(orders)
	} else {
		log.Printf("⚠️ Comptage commandes impossible: %v", err)
	}

	return counts
}
