package api_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedra_admin/internal/api"
	"cedra_admin/internal/editor"
	"cedra_admin/internal/models"
	"cedra_admin/internal/testserver"
)

func newClient(t *testing.T) (*api.Client, *testserver.Server) {
	t.Helper()
	backend := testserver.New()
	srv := httptest.NewServer(backend.Engine)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second), backend
}

func TestLoginSuccess(t *testing.T) {
	client, _ := newClient(t)

	err := client.Login(context.Background(), "admin@cedra.test", "motdepasse")
	require.NoError(t, err)
	assert.NotEmpty(t, client.Token())
	assert.False(t, api.TokenExpired(client.Token()))
}

func TestLoginRejected(t *testing.T) {
	client, _ := newClient(t)

	err := client.Login(context.Background(), "admin@cedra.test", "faux")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.True(t, api.IsServerRejection(err))
}

func TestGetAllCategories(t *testing.T) {
	client, backend := newClient(t)
	backend.SeedCategory("Chaussures")
	backend.SeedCategory("Vestes")

	cats, err := client.GetAllCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestCategoryCreateWithImage(t *testing.T) {
	client, _ := newClient(t)

	img := filepath.Join(t.TempDir(), "cat.jpg")
	require.NoError(t, os.WriteFile(img, []byte("img"), 0644))

	cat, err := client.CreateCategory(context.Background(), "Chaussures", img)
	require.NoError(t, err)
	assert.Equal(t, "Chaussures", cat.Name)
	assert.NotEmpty(t, cat.Image)
	assert.Equal(t, ".jpg", filepath.Ext(cat.Image))
}

func TestGetAllProductsFilters(t *testing.T) {
	client, backend := newClient(t)
	cat := backend.SeedCategory("Chaussures")
	backend.SeedProduct(models.Product{
		Name:     "Basket rouge",
		Category: cat,
		Tags:     models.TagList{"shoes", "running"},
		Variants: []models.Variant{{Color: "rouge", Price: "10", Stock: "2"}},
	})
	backend.SeedProduct(models.Product{
		Name:     "Veste bleue",
		Tags:     models.TagList{"jacket"},
		Variants: []models.Variant{{Color: "bleu", Price: "30", Stock: "1"}},
	})

	ctx := context.Background()

	all, err := client.GetAllProducts(ctx, api.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCategory, err := client.GetAllProducts(ctx, api.Filter{Category: cat.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Basket rouge", byCategory[0].Name)

	byColor, err := client.GetAllProducts(ctx, api.Filter{Color: "bleu"})
	require.NoError(t, err)
	require.Len(t, byColor, 1)
	assert.Equal(t, "Veste bleue", byColor[0].Name)

	byTags, err := client.GetAllProducts(ctx, api.Filter{Tags: []string{"shoes", "running"}})
	require.NoError(t, err)
	require.Len(t, byTags, 1)
	assert.Equal(t, "Basket rouge", byTags[0].Name)
}

func TestDeleteProduct(t *testing.T) {
	client, backend := newClient(t)
	p := backend.SeedProduct(models.Product{Name: "Basket"})

	require.NoError(t, client.DeleteProduct(context.Background(), p.ID))
	_, ok := backend.Product(p.ID)
	assert.False(t, ok)

	err := client.DeleteProduct(context.Background(), p.ID)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

// Session d'éditeur complète contre le backend : création avec fichiers,
// puis édition avec retrait d'une image existante.
func TestEditorSessionAgainstBackend(t *testing.T) {
	client, backend := newClient(t)
	cat := backend.SeedCategory("Chaussures")
	ctx := context.Background()

	img := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(img, []byte("img"), 0644))

	// Création
	create := editor.NewCreateSession(client, editor.Policy{})
	d := create.Draft()
	d.SetField("name", "Basket")
	d.SetField("category", cat.ID)
	d.SetField("price", "49.90")
	d.SetTagInput("shoes")
	d.AddTag()
	d.AddVariant()
	d.UpdateVariant(0, "color", "rouge")
	_, err := d.AddNewImages(img)
	require.NoError(t, err)

	created, err := create.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.CreateProductCalls)
	assert.Equal(t, 0, backend.UpdateProductCalls)
	require.Len(t, created.Images, 1)
	assert.Equal(t, []string(created.Tags), []string{"shoes"})
	assert.Equal(t, cat.ID, created.Category.ID)

	// Édition : on retire l'image existante et on en ajoute une autre
	edit := editor.NewEditSession(client, created, editor.Policy{})
	d = edit.Draft()
	d.RemoveExistingImage(0)
	img2 := filepath.Join(t.TempDir(), "photo2.png")
	require.NoError(t, os.WriteFile(img2, []byte("img2"), 0644))
	_, err = d.AddNewImages(img2)
	require.NoError(t, err)

	updated, err := edit.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.CreateProductCalls, "l'édition ne doit pas repasser par la création")
	assert.Equal(t, 1, backend.UpdateProductCalls)
	assert.Equal(t, created.ID, updated.ID)
	require.Len(t, updated.Images, 1)
	assert.NotEqual(t, created.Images[0], updated.Images[0], "l'image retirée ne doit pas survivre")
	assert.Equal(t, ".png", filepath.Ext(updated.Images[0]))
}

func TestEditorSubmitFailurePreservesDraft(t *testing.T) {
	client, backend := newClient(t)
	backend.FailNextProduct = true

	s := editor.NewCreateSession(client, editor.Policy{})
	s.Draft().SetField("name", "Basket")

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsServerRejection(err))
	assert.Equal(t, "Basket", s.Draft().Name)

	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, backend.CreateProductCalls)
}

func TestTokenExpired(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Hour))
	valid := signedToken(t, time.Now().Add(time.Hour))

	assert.True(t, api.TokenExpired(expired))
	assert.False(t, api.TokenExpired(valid))
	assert.True(t, api.TokenExpired("pas-un-jwt"))
}

func TestExpiredTokenBlocksCalls(t *testing.T) {
	client, _ := newClient(t)
	client.SetToken(signedToken(t, time.Now().Add(-time.Hour)))

	_, err := client.GetAllCategories(context.Background())
	assert.ErrorIs(t, err, api.ErrTokenExpire)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"email": "admin@cedra.test", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, api.SaveToken(path, "abc"))

	token, err := api.LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
