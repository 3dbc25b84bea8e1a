package database

import (
	"testing"

	"patient-intake-service/internal/app/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(&config.DriverConfig{Redis: config.Redis{
		Host: server.Host(),
		Port: server.Port(),
	}})
	require.NoError(t, err)
	defer client.Close()
	assert.NotNil(t, client)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	server := miniredis.RunT(t)
	host, port := server.Host(), server.Port()
	server.Close()

	client, err := NewRedisClient(&config.DriverConfig{Redis: config.Redis{Host: host, Port: port}})
	assert.Error(t, err)
	assert.Nil(t, client)
}
