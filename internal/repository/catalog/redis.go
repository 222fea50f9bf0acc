package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

const redisKey = "sevamcp:catalog"

// RedisConfig holds connection parameters for the Redis snapshot store.
type RedisConfig struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisStore keeps the catalog snapshot in Redis as a JSON blob with a
// server-side expiry, so replicas of the server share one snapshot.
type RedisStore struct {
	client rueidis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

// Get returns the snapshot if the key is present.
func (s *RedisStore) Get(ctx context.Context) ([]domain.Service, bool, error) {
	cmd := s.client.B().Get().Key(redisKey).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get catalog: %w", err)
	}

	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, false, fmt.Errorf("decode cached catalog: %w", err)
	}
	return services, true, nil
}

// Set stores the snapshot with the configured expiry.
func (s *RedisStore) Set(ctx context.Context, services []domain.Service) error {
	data, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	cmd := s.client.B().Set().Key(redisKey).Value(string(data)).Ex(s.ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set catalog: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *RedisStore) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until Redis responds or the timeout expires.
func (s *RedisStore) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for redis: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
