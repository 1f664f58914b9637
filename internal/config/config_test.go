package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORAGE_DRIVER", "MinIO")
	t.Setenv("FILE_TTL_SEC", "120")
	t.Setenv("DEFAULT_AUTHOR", "Otra Autora")
	t.Setenv("AUTHOR_AFFILIATION", "Facultad de Ciencias; ;UNAN León ")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, StorageDriverMinIO, cfg.Storage.Driver)
	assert.Equal(t, 2*time.Minute, cfg.Storage.FileTTL())
	assert.Equal(t, "Otra Autora", cfg.Document.DefaultAuthor)
	assert.Equal(t, []string{"Facultad de Ciencias", "UNAN León"}, cfg.Document.AuthorAffiliation)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "TEMP_DIR", "FILE_TTL_SEC", "CLEANUP_INTERVAL_SEC", "UNIQUE_FILENAMES", "DEFAULT_TITLE", "DEFAULT_AUTHOR", "AUTHOR_AFFILIATION", "STORAGE_DRIVER", "DB_CONNECT_ATTEMPTS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, 3, cfg.Database.ConnectAttempts)
	assert.Equal(t, "temp", cfg.Storage.TempDir)
	assert.Equal(t, time.Hour, cfg.Storage.FileTTL())
	assert.Equal(t, time.Duration(0), cfg.Storage.CleanupInterval())
	assert.True(t, cfg.Storage.UniqueFilenames)
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, "Documento Científico", cfg.Document.DefaultTitle)
	assert.Equal(t, "Ismael Antonio Cárdenas López", cfg.Document.DefaultAuthor)
	assert.Equal(t, []string{"Licenciado en Matemática", "UNAN León"}, cfg.Document.AuthorAffiliation)
}

func TestStorageConfig_FileTTLNotPositive(t *testing.T) {
	for _, v := range []string{"0", "-30"} {
		t.Setenv("FILE_TTL_SEC", v)
		assert.Equal(t, time.Hour, Load().Storage.FileTTL(), v)
	}
	assert.Equal(t, time.Hour, StorageConfig{}.FileTTL())
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, (&AppConfig{Timezone: "Local"}).Location())
	assert.Equal(t, time.Local, (&AppConfig{Timezone: "Not/AZone"}).Location())
	assert.Equal(t, "UTC", (&AppConfig{Timezone: "UTC"}).Location().String())
}

func TestAppConfig_IsProduction(t *testing.T) {
	assert.True(t, (&AppConfig{AppEnv: "production"}).IsProduction())
	assert.True(t, (&AppConfig{AppEnv: "PROD"}).IsProduction())
	assert.False(t, (&AppConfig{AppEnv: "development"}).IsProduction())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"
	t.Setenv(key, "a; b ;;c")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvList(key, nil))

	t.Setenv(key, "")
	assert.Equal(t, []string{"x"}, getEnvList(key, []string{"x"}))
}
