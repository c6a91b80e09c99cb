package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkbeambot/pinkbeam-sub001/pkg/config"
)

func TestPoolConfigFor_AplicaConfiguracion(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{
		Host: "db", Port: 5432, User: "pb", Password: "x", DBName: "pinkbeam", SSLMode: "disable",
		MaxConns: 8, MinConns: 2, AppName: "pinkbeam-api",
	})
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, "pinkbeam-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect, "el codec decimal se registra en cada conexión")
}

func TestPoolConfigFor_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{
		DatabaseURL: "postgres://u:p@supabase.example:6543/prod?sslmode=require",
		Host:        "ignorado", MaxConns: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "supabase.example", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://%zz", MaxConns: 1})
	assert.ErrorContains(t, err, "parse DSN")
}
