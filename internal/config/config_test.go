package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/hooks/codec"
	"github.com/AnatoleLucet/hooks/internal/testutil"
	"github.com/AnatoleLucet/hooks/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))
		require.NoError(t, err)

		assert.Equal(t, Default(), cfg)
		assert.True(t, cfg.Fetch.LogErrors)
		assert.Equal(t, BackendMemory, cfg.Store.Backend)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
store:
  backend: sqlite
  path: /var/lib/hooks.db
  prefix: prefs
  codec: yaml
  timeout: 2s
fetch:
  log_errors: false
  detailed: true
  timeout: 10s
`))
		require.NoError(t, err)

		assert.Equal(t, BackendSQLite, cfg.Store.Backend)
		assert.Equal(t, "/var/lib/hooks.db", cfg.Store.Path)
		assert.Equal(t, "prefs", cfg.Store.Prefix)
		assert.Equal(t, 2*time.Second, cfg.Store.Timeout)
		assert.False(t, cfg.Fetch.LogErrors)
		assert.True(t, cfg.Fetch.Detailed)
		assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)

		c, err := cfg.Store.NewCodec()
		require.NoError(t, err)
		assert.Equal(t, codec.YAML{}, c)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "store: [oops"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		store StoreConfig
	}{
		{"unknown backend", StoreConfig{Backend: "etcd"}},
		{"unknown codec", StoreConfig{Backend: BackendMemory, Codec: "xml"}},
		{"file without path", StoreConfig{Backend: BackendFile}},
		{"sqlite without path", StoreConfig{Backend: BackendSQLite}},
		{"postgres without dsn", StoreConfig{Backend: BackendPostgres}},
		{"redis without addr", StoreConfig{Backend: BackendRedis}},
		{"mongo without database", StoreConfig{Backend: BackendMongo, DSN: "mongodb://localhost"}},
		{"negative timeout", StoreConfig{Backend: BackendMemory, Timeout: -time.Second}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Store = tc.store

			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	t.Run("negative fetch timeout", func(t *testing.T) {
		cfg := Default()
		cfg.Fetch.Timeout = -1

		assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
	})

	t.Run("valid", func(t *testing.T) {
		cfg := Default()
		cfg.Store = StoreConfig{Backend: BackendRedis, Addr: "localhost:6379"}

		assert.NoError(t, cfg.Validate())
	})
}

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		s, closeFn, err := StoreConfig{Backend: BackendMemory}.Open(context.Background())
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeFn() })

		assert.IsType(t, &store.Memory{}, s)
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()

		s, closeFn, err := StoreConfig{Backend: BackendFile, Path: dir, Codec: "yaml"}.Open(context.Background())
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeFn() })

		require.NoError(t, s.Set("k", "v: 1\n"))
		_, err = os.Stat(filepath.Join(dir, "k.yaml"))
		assert.NoError(t, err)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hooks.db")

		s, closeFn, err := StoreConfig{Backend: BackendSQLite, Path: path}.Open(context.Background())
		require.NoError(t, err)

		require.NoError(t, s.Set("k", "42"))
		require.NoError(t, closeFn())

		reopened, closeFn, err := StoreConfig{Backend: BackendSQLite, Path: path}.Open(context.Background())
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeFn() })

		value, ok, err := reopened.Get("k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "42", value)
	})

	t.Run("write-behind only wraps remote backends", func(t *testing.T) {
		s, closeFn, err := StoreConfig{Backend: BackendMemory, WriteBehind: true}.Open(context.Background())
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeFn() })

		assert.IsType(t, &store.Memory{}, s)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		_, _, err := StoreConfig{Backend: BackendRedis, Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond}.Open(context.Background())
		assert.Error(t, err)
	})
}

func TestOpenRedisWriteBehind(t *testing.T) {
	addr := testutil.RedisAddress(t)

	cfg := StoreConfig{Backend: BackendRedis, Addr: addr, Prefix: "hooks:config:", WriteBehind: true}
	s, closeFn, err := cfg.Open(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &store.WriteBehind{}, s)

	require.NoError(t, s.Set("k", "42"))
	require.NoError(t, closeFn())

	cfg.WriteBehind = false
	reopened, closeFn, err := cfg.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	value, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", value)
}
