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

const validPublic = `
log_level: debug
http:
  port: 8080
  read_timeout: 5s
  write_timeout: 10s
storage:
  driver: pg
jwt_ttl: 24h
board_name_max_len: 100
message_text_max_len: 2000
write_rate_per_second: 1
write_burst: 5
`

const validPrivate = `
jwt_key: 'k'
pg:
  host: localhost
  port: 5432
  user: kudos
  password: kudos
  dbname: kudos
`

func writeConfig(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, validPublic, validPrivate)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Public.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.Public.HTTP.WriteTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JwtTTL())
	assert.Equal(t, "k", cfg.JwtKey())
	assert.Equal(t, DriverPg, cfg.Public.Storage.Driver)
	assert.Equal(t, "kudos", cfg.Private.Pg.Dbname)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, validPublic, validPrivate)
	t.Setenv("KUDOS_JWT_KEY", "from-env")
	t.Setenv("KUDOS_PG_HOST", "db.internal")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JwtKey())
	assert.Equal(t, "db.internal", cfg.Private.Pg.Host)
	assert.Equal(t, 5432, cfg.Private.Pg.Port, "unset env keeps yaml value")
}

func TestLoad_IgnoresUnprefixedEnv(t *testing.T) {
	dir := writeConfig(t, validPublic, validPrivate)
	t.Setenv("USER", "root")
	t.Setenv("PORT", "9999")
	t.Setenv("HOST", "shell-host")
	t.Setenv("PASSWORD", "")
	t.Setenv("DBNAME", "other")
	t.Setenv("JWT_KEY", "shell-key")
	t.Setenv("MONGO_URI", "mongodb://shell")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, Pg{Host: "localhost", Port: 5432, User: "kudos", Password: "kudos", Dbname: "kudos"}, cfg.Private.Pg)
	assert.Equal(t, "k", cfg.JwtKey())
	assert.Empty(t, cfg.Private.MongoURI)
}

func TestLoad_PrefixedMongoURI(t *testing.T) {
	dir := writeConfig(t, validPublic, validPrivate)
	t.Setenv("KUDOS_MONGO_URI", "mongodb://db:27017")
	t.Setenv("KUDOS_PG_USER", "svc")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.Private.MongoURI)
	assert.Equal(t, "svc", cfg.Private.Pg.User)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := writeConfig(t, validPublic, validPrivate)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KUDOS_PG_DBNAME=dotenv_db\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("KUDOS_PG_DBNAME") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "dotenv_db", cfg.Private.Pg.Dbname)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		public  string
		private string
	}{
		{
			name:    "missing jwt key",
			public:  validPublic,
			private: "pg:\n  host: localhost\n  dbname: kudos\n",
		},
		{
			name:    "unknown driver",
			public:  strings.Replace(validPublic, "driver: pg", "driver: cassandra", 1),
			private: validPrivate,
		},
		{
			name:    "mongo without uri",
			public:  strings.Replace(validPublic, "driver: pg", "driver: mongo\n  mongo_database: kudos", 1),
			private: validPrivate,
		},
		{
			name:    "pg without host",
			public:  validPublic,
			private: "jwt_key: k\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeConfig(t, tc.public, tc.private)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestMustLoad_RequiredFields(t *testing.T) {
	// board_name_max_len is intentionally missing
	public := "http:\n  port: 8080\n  read_timeout: 1s\n  write_timeout: 1s\nstorage:\n  driver: badger\njwt_ttl: 1h\nmessage_text_max_len: 10\n"
	dir := writeConfig(t, public, "jwt_key: 'k'\n")

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing required field, got none")
		}
	}()

	_ = MustLoad(dir)
}
