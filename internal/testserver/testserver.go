// Package testserver est un backend Cedra miniature tenu en mémoire,
// utilisé par les tests du client admin. Il parle le même contrat que le
// vrai backend : mêmes routes, même contrat multipart produit, mêmes
// réponses gin.H.
package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cedra_admin/internal/models"
)

type Server struct {
	Engine *gin.Engine

	mu         sync.Mutex
	categories map[string]*models.Category
	products   map[string]*models.Product
	orders     []models.Order
	users      []models.User

	AdminEmail    string
	AdminPassword string
	jwtSecret     []byte

	// Compteurs d'appels pour les assertions de dispatch
	CreateProductCalls int
	UpdateProductCalls int
	DeleteProductCalls int

	// FailNextProduct - force un 500 sur le prochain POST/PUT produit
	FailNextProduct bool
}

func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		Engine:        gin.New(),
		categories:    map[string]*models.Category{},
		products:      map[string]*models.Product{},
		AdminEmail:    "admin@cedra.test",
		AdminPassword: "motdepasse",
		jwtSecret:     []byte("secret_de_test"),
	}

	s.Engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	s.Engine.POST("/auth/login", s.login)
	s.Engine.GET("/categories", s.listCategories)
	s.Engine.POST("/categories", s.createCategory)
	s.Engine.PUT("/categories/:id", s.updateCategory)
	s.Engine.DELETE("/categories/:id", s.deleteCategory)
	s.Engine.GET("/products", s.listProducts)
	s.Engine.GET("/products/:id", s.getProduct)
	s.Engine.POST("/products", s.createProduct)
	s.Engine.PUT("/products/:id", s.updateProduct)
	s.Engine.DELETE("/products/:id", s.deleteProduct)
	s.Engine.GET("/orders", s.listOrders)
	s.Engine.GET("/users", s.listUsers)

	return s
}

// --- Données de test ---

func (s *Server) SeedCategory(name string) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := &models.Category{ID: uuid.NewString(), Name: name}
	s.categories[cat.ID] = cat
	return *cat
}

func (s *Server) SeedProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	stored := p
	s.products[p.ID] = &stored
	return p
}

func (s *Server) SeedOrder(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.orders = append(s.orders, o)
}

func (s *Server) SeedUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users = append(s.users, u)
}

func (s *Server) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, false
	}
	return *p, true
}

// --- Auth ---

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != s.AdminEmail || req.Password != s.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	claims := jwt.MapClaims{
		"email": req.Email,
		"role":  "admin",
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.SetCookie("cedra_session", token, 86400, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

// --- Catégories ---

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cats := make([]models.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		cats = append(cats, *cat)
	}
	c.JSON(http.StatusOK, cats)
}

func (s *Server) createCategory(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}

	cat := &models.Category{ID: uuid.NewString(), Name: name}
	if file, err := c.FormFile("image"); err == nil {
		cat.Image = storedImageRef(file.Filename)
	}

	s.mu.Lock()
	s.categories[cat.ID] = cat
	s.mu.Unlock()
	c.JSON(http.StatusOK, cat)
}

func (s *Server) updateCategory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}
	if name := c.PostForm("name"); name != "" {
		cat.Name = name
	}
	if file, err := c.FormFile("image"); err == nil {
		cat.Image = storedImageRef(file.Filename)
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Server) deleteCategory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.Param("id")]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}
	delete(s.categories, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}

// --- Produits ---

func (s *Server) listProducts(c *gin.Context) {
	category := c.Query("category")
	color := c.Query("color")
	tags := models.SplitTags(c.Query("tags"))

	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && p.Category.ID != category {
			continue
		}
		if color != "" && !hasColor(p, color) {
			continue
		}
		if len(tags) > 0 && !hasAllTags(p, tags) {
			continue
		}
		products = append(products, *p)
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c *gin.Context) {
	s.mu.Lock()
	s.CreateProductCalls++
	fail := s.FailNextProduct
	s.FailNextProduct = false
	s.mu.Unlock()
	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	p, err := s.productFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = uuid.NewString()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.mu.Lock()
	stored := *p
	s.products[p.ID] = &stored
	s.mu.Unlock()
	c.JSON(http.StatusOK, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	s.mu.Lock()
	s.UpdateProductCalls++
	fail := s.FailNextProduct
	s.FailNextProduct = false
	existing, ok := s.products[c.Param("id")]
	s.mu.Unlock()
	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}

	p, err := s.productFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()

	s.mu.Lock()
	stored := *p
	s.products[p.ID] = &stored
	s.mu.Unlock()
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteProductCalls++
	if _, ok := s.products[c.Param("id")]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}
	delete(s.products, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// productFromForm - le contrat multipart de l'éditeur : scalaires en
// texte, tags/variantes/images existantes/retirées en JSON-texte, et les
// nouveaux fichiers sous le champ répété "images". Les images conservées
// sont les existantes moins les retirées, plus les nouveaux uploads.
func (s *Server) productFromForm(c *gin.Context) (*models.Product, error) {
	p := &models.Product{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
	}

	catID := c.PostForm("category")
	s.mu.Lock()
	if cat, ok := s.categories[catID]; ok {
		p.Category = *cat
	} else {
		p.Category = models.Category{ID: catID}
	}
	s.mu.Unlock()

	// TagList tolère le tableau JSON comme la chaîne jointe
	if raw := c.PostForm("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Tags); err != nil {
			return nil, fmt.Errorf("champ 'tags' illisible: %w", err)
		}
	}
	if raw := c.PostForm("variants"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Variants); err != nil {
			return nil, fmt.Errorf("champ 'variants' illisible: %w", err)
		}
	}

	var existing, removed []string
	if raw := c.PostForm("existingImages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			return nil, fmt.Errorf("champ 'existingImages' illisible: %w", err)
		}
	}
	if raw := c.PostForm("removedImages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &removed); err != nil {
			return nil, fmt.Errorf("champ 'removedImages' illisible: %w", err)
		}
	}

	gone := map[string]bool{}
	for _, ref := range removed {
		gone[ref] = true
	}
	p.Images = []string{}
	for _, ref := range existing {
		if !gone[ref] {
			p.Images = append(p.Images, ref)
		}
	}

	if form, err := c.MultipartForm(); err == nil {
		for _, file := range form.File["images"] {
			p.Images = append(p.Images, storedImageRef(file.Filename))
		}
	}

	return p, nil
}

// --- Commandes et utilisateurs ---

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.orders
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) listUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.users
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// --- Aides ---

func storedImageRef(filename string) string {
	return "/" + uuid.NewString() + filepath.Ext(filename)
}

func hasColor(p *models.Product, color string) bool {
	for _, v := range p.Variants {
		if v.Color == color {
			return true
		}
	}
	return false
}

func hasAllTags(p *models.Product, tags []string) bool {
	have := map[string]bool{}
	for _, t := range p.Tags {
		have[t] = true
	}
	for _, t := range tags {
		if !have[t] {
			return false
		}
	}
	return true
}
