package tripstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore keeps each trip as a JSON string, plus a per-user sorted set
// (score = creation time) and a per-user content hash index.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithTTL expires trips after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore connects to a Redis server.
func NewRedisStore(address, password string, db int, opts ...RedisOption) *RedisStore {
	return NewRedisStoreFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "tripgest:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) tripKey(id string) string {
	return s.prefix + "trip:" + id
}

func (s *RedisStore) userKey(userID string) string {
	return s.prefix + "user:" + userID + ":trips"
}

func (s *RedisStore) hashKey(userID, hash string) string {
	return s.prefix + "user:" + userID + ":hash:" + hash
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Save(ctx context.Context, trip *Trip) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("marshal trip: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tripKey(trip.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.userKey(trip.UserID), backend.Z{
		Score:  float64(trip.CreatedAt.UnixNano()),
		Member: trip.ID,
	})
	if trip.ContentHash != "" {
		pipe.Set(ctx, s.hashKey(trip.UserID, trip.ContentHash), trip.ID, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save trip %s: %w", trip.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Trip, error) {
	val, err := s.client.Get(ctx, s.tripKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	var trip Trip
	if err := json.Unmarshal(val, &trip); err != nil {
		return nil, fmt.Errorf("unmarshal trip %s: %w", id, err)
	}
	return &trip, nil
}

// ListByUser reads the user's index newest first. Index members whose trip
// has expired are pruned on the way.
func (s *RedisStore) ListByUser(ctx context.Context, userID string) ([]*Trip, error) {
	ids, err := s.client.ZRevRange(ctx, s.userKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.tripKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}

	var trips []*Trip
	var stale []any
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var trip Trip
		if err := json.Unmarshal([]byte(raw), &trip); err != nil {
			return nil, fmt.Errorf("unmarshal trip %s: %w", ids[i], err)
		}
		trips = append(trips, &trip)
	}
	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, s.userKey(userID), stale...).Err(); err != nil {
			return nil, fmt.Errorf("prune expired trips: %w", err)
		}
	}
	return trips, nil
}

func (s *RedisStore) FindByHash(ctx context.Context, userID, contentHash string) (*Trip, error) {
	id, err := s.client.Get(ctx, s.hashKey(userID, contentHash)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find trip by hash: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	trip, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.tripKey(id))
	pipe.ZRem(ctx, s.userKey(trip.UserID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}

	// A forced re-import may have pointed the hash at a newer trip.
	if trip.ContentHash != "" {
		err := delIfOwner.Run(ctx, s.client, []string{s.hashKey(trip.UserID, trip.ContentHash)}, id).Err()
		if err != nil {
			return fmt.Errorf("delete trip %s hash index: %w", id, err)
		}
	}
	return nil
}

// delIfOwner removes KEYS[1] only while it still holds ARGV[1].
var delIfOwner = backend.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
