package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config lookup at an empty temp dir and clears
// CINEMATCH_* variables inherited from the test runner.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, 5, cfg.TMDB.Limit)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Server.RateLimited())
	assert.False(t, cfg.TMDB.Configured())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "cinematch.yaml"), `
tmdb:
  api_key: from-file
  limit: 8
  timeout: 3s
server:
  addr: ":9090"
  cors_origins: [https://a.example, https://b.example]
logging:
  level: debug
`)
	t.Setenv("CINEMATCH_TMDB_LIMIT", "12")
	t.Setenv("CINEMATCH_LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.TMDB.APIKey)
	assert.Equal(t, 12, cfg.TMDB.Limit, "env overrides file")
	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.TMDB.Configured())
}

func TestLoad_EnvSliceAndDuration(t *testing.T) {
	isolate(t)
	t.Setenv("CINEMATCH_SERVER_CORS_ORIGINS", " https://x.example , ,https://y.example")
	t.Setenv("CINEMATCH_SERVER_RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CINEMATCH_DB", "/tmp/events.db")
	t.Setenv("CINEMATCH_LLM_PROVIDER", "mock")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.example", "https://y.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.Server.RateLimitWindow)
	assert.Equal(t, "/tmp/events.db", cfg.Store.Path)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "elsewhere.yaml")
	writeFile(t, p, "tmdb:\n  access_token: tok\n")
	t.Setenv(PathEnvVar, p)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.TMDB.AccessToken)
	assert.Equal(t, "tok", cfg.TMDB.Client().AccessToken)
}

func TestLoad_XDGConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "cinematch", "config.yaml"), "tmdb:\n  language: de-DE\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "de-DE", cfg.TMDB.Language)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"limit too high", map[string]string{"CINEMATCH_TMDB_LIMIT": "50"}, "tmdb.limit must be at most 20"},
		{"limit zero", map[string]string{"CINEMATCH_TMDB_LIMIT": "0"}, "tmdb.limit must be at least 1"},
		{"bad level", map[string]string{"CINEMATCH_LOG_LEVEL": "loud"}, "logging.level must be one of"},
		{"bad format", map[string]string{"CINEMATCH_LOG_FORMAT": "xml"}, "logging.format must be one of"},
		{"bad addr", map[string]string{"CINEMATCH_SERVER_ADDR": "nowhere"}, "server.addr"},
		{"short timeout", map[string]string{"CINEMATCH_TMDB_TIMEOUT": "10ms"}, "tmdb.timeout must be at least 1s"},
		{"missing quiz table", map[string]string{"CINEMATCH_QUIZ_PATH": "/does/not/exist.yaml"}, "quiz.path"},
		{"window without duration", map[string]string{"CINEMATCH_SERVER_RATE_LIMIT_WINDOW": "0s"}, "rate_limit_window must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "tmdb.api_key", envTransformFunc("CINEMATCH_TMDB_API_KEY"))
	assert.Equal(t, "store.path", envTransformFunc("CINEMATCH_DB"))
	assert.Equal(t, "", envTransformFunc("CINEMATCH_LLM_PROVIDER"))
	assert.Equal(t, "", envTransformFunc("CINEMATCH_UNKNOWN"))
}
