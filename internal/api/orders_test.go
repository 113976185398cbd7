package api_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedra_admin/internal/models"
)

func TestOrdersWithProducts(t *testing.T) {
	client, backend := newClient(t)

	p1 := backend.SeedProduct(models.Product{Name: "Basket"})
	p2 := backend.SeedProduct(models.Product{Name: "Veste"})

	backend.SeedOrder(models.Order{
		Users:       []models.OrderUser{{Email: "client@exemple.fr"}},
		Products:    []models.OrderLine{{ProductID: p1.ID, Quantity: 2}, {ProductID: p2.ID, Quantity: 1}},
		TotalAmount: 79.80,
	})
	// Deux commandes partagent un produit : une seule fiche est récupérée
	backend.SeedOrder(models.Order{
		Products: []models.OrderLine{{ProductID: p1.ID, Quantity: 1}},
	})

	orders, details, err := client.OrdersWithProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	require.Len(t, details, 2)
	assert.Equal(t, "Basket", details[p1.ID].Name)
	assert.Equal(t, "Veste", details[p2.ID].Name)
}

// Un produit supprimé depuis la commande ne casse pas l'écran : sa fiche
// manque, c'est tout.
func TestOrdersWithProductsToleratesMissingProduct(t *testing.T) {
	client, backend := newClient(t)

	p := backend.SeedProduct(models.Product{Name: "Basket"})
	backend.SeedOrder(models.Order{
		Products: []models.OrderLine{
			{ProductID: p.ID, Quantity: 1},
			{ProductID: "produit-disparu", Quantity: 3},
		},
	})

	orders, details, err := client.OrdersWithProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Len(t, details, 1)
	assert.NotContains(t, details, "produit-disparu")
}

func TestDashboardCounts(t *testing.T) {
	client, backend := newClient(t)
	backend.SeedProduct(models.Product{Name: "Basket"})
	backend.SeedUser(models.User{Name: "Alice", Email: "alice@exemple.fr"})
	backend.SeedUser(models.User{Name: "Bob", Email: "bob@exemple.fr"})

	counts := client.DashboardCounts(context.Background())
	assert.Equal(t, 1, counts.Products)
	assert.Equal(t, 2, counts.Users)
	assert.Equal(t, 0, counts.Orders)
}
