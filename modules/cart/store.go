package cart

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL is how long an untouched cart survives. Every write refreshes it.
const cartTTL = 30 * 24 * time.Hour

// Store persists cart contents keyed by an opaque device token. The cart is
// ephemeral UI state, not a server-trusted artifact: checkout re-validates
// every product against the live catalog.
type Store interface {
	// SetQuantity upserts the quantity for a product. Quantities <= 0
	// remove the entry.
	SetQuantity(ctx context.Context, token, productID string, qty int) error
	// Remove deletes the entry unconditionally.
	Remove(ctx context.Context, token, productID string) error
	// Clear empties the cart.
	Clear(ctx context.Context, token string) error
	// Get returns the product -> quantity mapping.
	Get(ctx context.Context, token string) (map[string]int, error)
}

// RedisStore implements Store on a Redis hash per cart, so carts survive
// process restarts.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cart:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

// SetQuantity upserts or removes the cart entry for a product.
func (s *RedisStore) SetQuantity(ctx context.Context, token, productID string, qty int) error {
	key := s.key(token)
	if qty <= 0 {
		if err := s.client.HDel(ctx, key, productID).Err(); err != nil {
			return fmt.Errorf("cart hdel error: %w", err)
		}
		return nil
	}
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, productID, qty)
	pipe.Expire(ctx, key, cartTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cart hset error: %w", err)
	}
	return nil
}

// Remove deletes the entry unconditionally.
func (s *RedisStore) Remove(ctx context.Context, token, productID string) error {
	if err := s.client.HDel(ctx, s.key(token), productID).Err(); err != nil {
		return fmt.Errorf("cart hdel error: %w", err)
	}
	return nil
}

// Clear empties the cart.
func (s *RedisStore) Clear(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("cart del error: %w", err)
	}
	return nil
}

// Get returns the product -> quantity mapping.
func (s *RedisStore) Get(ctx context.Context, token string) (map[string]int, error) {
	entries, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("cart hgetall error: %w", err)
	}

	cart := make(map[string]int, len(entries))
	for productID, raw := range entries {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart entry %s: %w", productID, err)
		}
		cart[productID] = qty
	}
	return cart, nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore implements Store in process memory. It is the fallback when no
// Redis address is configured, and the store used in tests. Carts do not
// survive restarts in this mode.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]map[string]int
}

// NewMemoryStore creates an in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]map[string]int)}
}

// SetQuantity upserts or removes the cart entry for a product.
func (s *MemoryStore) SetQuantity(_ context.Context, token, productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[token]
	if !ok {
		if qty <= 0 {
			return nil
		}
		cart = make(map[string]int)
		s.carts[token] = cart
	}
	if qty <= 0 {
		delete(cart, productID)
		return nil
	}
	cart[productID] = qty
	return nil
}

// Remove deletes the entry unconditionally.
func (s *MemoryStore) Remove(_ context.Context, token, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts[token], productID)
	return nil
}

// Clear empties the cart.
func (s *MemoryStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}

// Get returns a copy of the product -> quantity mapping.
func (s *MemoryStore) Get(_ context.Context, token string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := make(map[string]int, len(s.carts[token]))
	for productID, qty := range s.carts[token] {
		cart[productID] = qty
	}
	return cart, nil
}
