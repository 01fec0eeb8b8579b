package theme

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Load(ctx context.Context) (string, error) { return "", errors.New("unavailable") }
func (failingStore) Save(ctx context.Context, mode Mode) error { return errors.New("unavailable") }

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"light": Light, " DARK ": Dark} {
		got, ok := ParseMode(in)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := ParseMode("sepia")
	assert.False(t, ok)
}

func TestLoadResolution(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		stored string
		system string
		want   Mode
	}{
		{"stored wins", "dark", "light", Dark},
		{"invalid stored uses system", "purple", "dark", Dark},
		{"nothing stored uses system", "", "dark", Dark},
		{"defaults to light", "", "", Light},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			store.value = tt.stored
			assert.Equal(t, tt.want, Load(ctx, store, tt.system).Current())
		})
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := Load(ctx, store, "")

	mode, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, mode)
	stored, _ := store.Load(ctx)
	assert.Equal(t, "dark", stored)

	mode, err = s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, mode)
	assert.Equal(t, Light, s.Current())
}

func TestToggleSaveFailureStillFlips(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, failingStore{}, "dark")

	mode, err := s.Toggle(ctx)

	assert.Error(t, err)
	assert.Equal(t, Light, mode)
	assert.Equal(t, Light, s.Current())
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	store := NewFileStore(path)

	v, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, store.Save(ctx, Dark))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theme: dark\n", string(data))

	// A fresh setting picks the persisted value up.
	assert.Equal(t, Dark, Load(ctx, NewFileStore(path), "light").Current())
}

func TestFileStoreInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [oops"), 0644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, Light, Load(context.Background(), NewFileStore(path), "").Current())
}

func TestRedisStoreNilClient(t *testing.T) {
	store := NewRedisStore(nil)
	v, err := store.Load(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, v)
	assert.NoError(t, store.Save(context.Background(), Dark))
}

func TestRedisStoreUnavailableFallsBackToSystem(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := Load(context.Background(), NewRedisStore(client), "dark")
	assert.Equal(t, Dark, s.Current())
}

func TestNewRedisClient(t *testing.T) {
	c, err := NewRedisClient("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", c.Options().Addr)
	c.Close()

	c, err = NewRedisClient("redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", c.Options().Addr)
	assert.Equal(t, 2, c.Options().DB)
	c.Close()

	_, err = NewRedisClient("redis://bad host:/x")
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	s, err := NewStore("memory", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = NewStore("file", "x.yaml", nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = NewStore("redis", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)

	_, err = NewStore("etcd", "", nil)
	assert.Error(t, err)
}
