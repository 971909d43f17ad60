package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("GOCAB_TEST_STRING", "value")

	assert.Equal(t, "value", GetEnv("GOCAB_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetEnv("GOCAB_TEST_MISSING", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("GOCAB_TEST_INT", "42")
	t.Setenv("GOCAB_TEST_INT_BAD", "not-a-number")

	assert.Equal(t, 42, GetEnvAsInt("GOCAB_TEST_INT", 7))
	assert.Equal(t, 7, GetEnvAsInt("GOCAB_TEST_INT_BAD", 7))
	assert.Equal(t, 7, GetEnvAsInt("GOCAB_TEST_INT_MISSING", 7))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("GOCAB_TEST_BOOL", "true")
	t.Setenv("GOCAB_TEST_BOOL_BAD", "maybe")

	assert.True(t, GetEnvAsBool("GOCAB_TEST_BOOL", false))
	assert.False(t, GetEnvAsBool("GOCAB_TEST_BOOL_BAD", false))
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("GOCAB_TEST_FLOAT", "2.5")

	assert.Equal(t, 2.5, GetEnvAsFloat("GOCAB_TEST_FLOAT", 1.0))
	assert.Equal(t, 1.0, GetEnvAsFloat("GOCAB_TEST_FLOAT_MISSING", 1.0))
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	configs := loadConfigFromEnv()

	assert.Equal(t, 1440, configs.JWT.Expiration)
	assert.Equal(t, "gocab", configs.JWT.Issuer)
	assert.Equal(t, 2.0, configs.Dispatch.SearchRadiusKm)
	assert.Equal(t, "redis", configs.Dispatch.LocationIndex)
	assert.Equal(t, 8080, configs.Server.Port)
}
