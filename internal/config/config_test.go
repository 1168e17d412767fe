package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv removes every variable Load reads so host settings don't leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REDIS_URL", "TASKD_ADDR", "TASKD_NAMESPACE", "TASKD_REDIS_POOL_SIZE", "TASKD_ATOMIC_CREATE",
		"TASKD_READ_TIMEOUT", "TASKD_WRITE_TIMEOUT", "TASKD_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskd.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `server:
  addr: "127.0.0.1:9000"
  read_timeout: 2s
redis:
  url: "redis://localhost:6379/1"
  namespace: "prod"
  pool_size: 8
  atomic_create: true
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", config.Server.Addr)
	assert.Equal(t, 2*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, config.Server.WriteTimeout, "unset fields keep defaults")
	assert.Equal(t, "redis://localhost:6379/1", config.Redis.URL)
	assert.Equal(t, "prod", config.Redis.Namespace)
	assert.Equal(t, 8, config.Redis.PoolSize)
	assert.True(t, config.Redis.AtomicCreate)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", config.Server.Addr)
	assert.Equal(t, "", config.Redis.Namespace)
	assert.False(t, config.Redis.AtomicCreate)
}

func TestLoad_FileNotFound(t *testing.T) {
	clearEnv(t)
	config, err := Load("/nonexistent/taskd.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `server:
  - this is invalid
    yaml syntax
`)

	config, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_UnknownField(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `redis:
  url: "redis://localhost:6379"
  pool: 4
`)

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_MissingRedisURL(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Redis.URL failed 'required'")
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `server:
  addr: "127.0.0.1:9000"
redis:
  url: "redis://file:6379"
  namespace: "file"
`)
	t.Setenv("REDIS_URL", "redis://env:6379")
	t.Setenv("TASKD_NAMESPACE", "env")
	t.Setenv("TASKD_WRITE_TIMEOUT", "3s")

	config, err := Load(path, func(c *Config) {
		c.Redis.Namespace = "flag"
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", config.Server.Addr, "file beats default")
	assert.Equal(t, "redis://env:6379", config.Redis.URL, "env beats file")
	assert.Equal(t, 3*time.Second, config.Server.WriteTimeout)
	assert.Equal(t, "flag", config.Redis.Namespace, "override beats env")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.Redis.URL = "redis://localhost:6379"
		return c
	}

	t.Run("accepts defaults with url", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects non-redis url", func(t *testing.T) {
		c := valid()
		c.Redis.URL = "http://localhost:6379"
		err := c.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid redis url")
	})

	t.Run("rejects zero timeout", func(t *testing.T) {
		c := valid()
		c.Server.ShutdownTimeout = 0
		err := c.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Server.ShutdownTimeout")
	})

	t.Run("rejects negative pool size", func(t *testing.T) {
		c := valid()
		c.Redis.PoolSize = -1
		assert.Error(t, c.Validate())
	})

	t.Run("rejects namespace containing a colon", func(t *testing.T) {
		c := valid()
		c.Redis.Namespace = "a:b"
		err := c.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Redis.Namespace")
	})
}

func TestRedisOptions(t *testing.T) {
	r := RedisConfig{URL: "redis://localhost:6380/2", PoolSize: 16}

	opts, err := r.Options()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 16, opts.PoolSize)
	assert.Equal(t, -1, opts.MaxRetries)
}
