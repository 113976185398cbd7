// Package cache évite de retaper le backend pour les deux listes chaudes
// de l'admin (catégories, produits). Redis quand il est configuré, mémoire
// locale sinon. Une récupération qui échoue sert l'entrée périmée plutôt
// que de vider l'écran.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"cedra_admin/internal/models"
)

const (
	CategoryListTTL = time.Hour
	ProductListTTL  = 10 * time.Minute

	categoriesKey = "categories:all"
	productsKey   = "products:all"
)

type Store interface {
	// Get - la donnée si présente, et si elle est encore fraîche
	Get(ctx context.Context, key string) (data []byte, fresh bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Close() error
}

// Open - Redis si host est renseigné (avec repli mémoire si la connexion
// échoue), mémoire locale sinon
func Open(host, password string) Store {
	if host == "" {
		return NewMemory()
	}
	store, err := NewRedis(host, password)
	if err != nil {
		log.Printf("⚠️ Redis indisponible (%v) — cache mémoire local", err)
		return NewMemory()
	}
	return store
}

// Categories - liste des catégories, cache d'abord
func Categories(ctx context.Context, store Store, fetch func(context.Context) ([]models.Category, error)) ([]models.Category, error) {
	var cats []models.Category
	err := through(ctx, store, categoriesKey, CategoryListTTL, &cats, func(c context.Context) (any, error) {
		return fetch(c)
	})
	return cats, err
}

// Products - liste non filtrée des produits, cache d'abord.
// Les listes filtrées ne passent pas par le cache.
func Products(ctx context.Context, store Store, fetch func(context.Context) ([]models.Product, error)) ([]models.Product, error) {
	var products []models.Product
	err := through(ctx, store, productsKey, ProductListTTL, &products, func(c context.Context) (any, error) {
		return fetch(c)
	})
	return products, err
}

func through(ctx context.Context, store Store, key string, ttl time.Duration, out any, fetch func(context.Context) (any, error)) error {
	cached, fresh := store.Get(ctx, key)
	if fresh {
		if json.Unmarshal(cached, out) == nil {
			return nil
		}
	}

	val, err := fetch(ctx)
	if err != nil {
		// Récupération en échec : l'entrée périmée vaut mieux qu'un
		// écran vide
		if cached != nil && json.Unmarshal(cached, out) == nil {
			log.Printf("⚠️ Backend indisponible pour %s — liste en cache servie: %v", key, err)
			return nil
		}
		return err
	}

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	store.Set(ctx, key, data, ttl)
	return json.Unmarshal(data, out)
}
