package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockchat/config"
)

func testConfig() *config.ConfigSchema {
	conf := &config.ConfigSchema{}
	conf.Database.Driver = "sqlite"
	conf.Database.Path = ":memory:"
	return conf
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	conf := testConfig()
	conf.Database.Driver = "oracle"
	_, err := Connect(conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown db driver")
}

func TestConnectRequiresMasterForPostgres(t *testing.T) {
	conf := &config.ConfigSchema{}
	conf.Database.Driver = "postgres"
	_, err := Connect(conf)
	require.Error(t, err)
}

func TestConnectRequiresConfig(t *testing.T) {
	_, err := Connect(nil)
	require.Error(t, err)
}
