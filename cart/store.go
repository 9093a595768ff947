package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dealerhub/portal-api/models"
)

// ErrKeyNotFound is returned by KV.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KV is the client persistence boundary: string keys, string values,
// last-write-wins. The cart store and the favorites trackers share it.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

type RedisKV struct {
	client *redis.Client
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	// Carts persist until explicitly cleared, so no TTL.
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Store persists one owner's cart as two independent collections, each a
// JSON-serialized slice under its own key. Every mutation writes the whole
// collection through immediately.
type Store struct {
	kv    KV
	owner string
}

func NewStore(kv KV, ownerID string) *Store {
	return &Store{kv: kv, owner: ownerID}
}

func merchKey(owner string) string    { return fmt.Sprintf("cart:merch:%s", owner) }
func vehiclesKey(owner string) string { return fmt.Sprintf("cart:vehicles:%s", owner) }

// Load rehydrates the cart. Absent or malformed data yields an empty
// collection, never an error.
func (s *Store) Load(ctx context.Context) *models.Cart {
	cart := &models.Cart{}

	if raw, err := s.kv.Get(ctx, merchKey(s.owner)); err == nil {
		var items []models.CartLineItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			cart.Items = items
		}
	}

	if raw, err := s.kv.Get(ctx, vehiclesKey(s.owner)); err == nil {
		var vehicles []models.VehicleCartLineItem
		if err := json.Unmarshal([]byte(raw), &vehicles); err == nil {
			cart.Vehicles = vehicles
		}
	}

	return cart
}

func (s *Store) SaveMerchandise(ctx context.Context, items []models.CartLineItem) error {
	if items == nil {
		items = []models.CartLineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart items failed: %w", err)
	}
	return s.kv.Set(ctx, merchKey(s.owner), string(data))
}

func (s *Store) SaveVehicles(ctx context.Context, vehicles []models.VehicleCartLineItem) error {
	if vehicles == nil {
		vehicles = []models.VehicleCartLineItem{}
	}
	data, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("marshal cart vehicles failed: %w", err)
	}
	return s.kv.Set(ctx, vehiclesKey(s.owner), string(data))
}
