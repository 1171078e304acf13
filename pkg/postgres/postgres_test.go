package postgres

import (
	"net/url"
	"testing"

	"github.com/DRSN-tech/credit-simulator/internal/cfg"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCfg() *cfg.PGDBCfg {
	return &cfg.PGDBCfg{
		Host:     "db.internal",
		Port:     "5433",
		User:     "simulador",
		Password: "p@ss:w/rd?",
		DBName:   "credito",
		SSLMode:  "disable",
	}
}

func TestDSN_EscapesCredentials(t *testing.T) {
	dsn := DSN(testCfg())

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:5433", u.Host)
	assert.Equal(t, "/credito", u.Path)
	assert.Equal(t, "simulador", u.User.Username())
	password, _ := u.User.Password()
	assert.Equal(t, "p@ss:w/rd?", password)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestDSN_ParsedByPgx(t *testing.T) {
	poolCfg, err := pgxpool.ParseConfig(DSN(testCfg()))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", poolCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), poolCfg.ConnConfig.Port)
	assert.Equal(t, "p@ss:w/rd?", poolCfg.ConnConfig.Password)
	assert.Equal(t, "credito", poolCfg.ConnConfig.Database)
	assert.Equal(t, applicationName, poolCfg.ConnConfig.RuntimeParams["application_name"])
}

func TestMigrationsURL(t *testing.T) {
	assert.Equal(t, "file://db/migrations", MigrationsURL("db/migrations"))
	assert.Equal(t, "file:///srv/migrations", MigrationsURL("/srv/migrations"))
	assert.Equal(t, "file://custom", MigrationsURL("file://custom"))
}
