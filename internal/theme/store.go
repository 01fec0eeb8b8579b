package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// MemoryStore keeps the preference for the life of the process.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *MemoryStore) Save(ctx context.Context, mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = string(mode)
	return nil
}

type fileContents struct {
	Theme string `yaml:"theme"`
}

// FileStore keeps the preference in a one-key YAML file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read theme file: %w", err)
	}

	var contents fileContents
	if err := yaml.Unmarshal(data, &contents); err != nil {
		return "", fmt.Errorf("failed to parse theme file: %w", err)
	}
	return contents.Theme, nil
}

// Save writes through a temp file and rename so readers never see a partial file.
func (f *FileStore) Save(ctx context.Context, mode Mode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := yaml.Marshal(fileContents{Theme: string(mode)})
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".theme-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create theme file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// RedisKey is the single key the Redis store uses.
const RedisKey = "cookmate:theme"

// RedisStore keeps the preference in Redis. A nil client stores nothing.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: RedisKey}
}

func (r *RedisStore) Load(ctx context.Context) (string, error) {
	if r.client == nil {
		return "", nil
	}
	value, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis theme get failed: %w", err)
	}
	return value, nil
}

func (r *RedisStore) Save(ctx context.Context, mode Mode) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Set(ctx, r.key, string(mode), 0).Err(); err != nil {
		return fmt.Errorf("redis theme set failed: %w", err)
	}
	return nil
}

// NewRedisClient accepts redis:// and rediss:// URLs or a bare host:port.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if !strings.HasPrefix(redisURL, "redis://") && !strings.HasPrefix(redisURL, "rediss://") {
		return redis.NewClient(&redis.Options{Addr: redisURL}), nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewStore picks a store by kind: "memory", "file" or "redis".
func NewStore(kind, filePath string, client *redis.Client) (Store, error) {
	switch kind {
	case "memory":
		return NewMemoryStore(), nil
	case "file", "":
		return NewFileStore(filePath), nil
	case "redis":
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown theme store %q", kind)
	}
}
