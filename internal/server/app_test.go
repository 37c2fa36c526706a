package server

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDriver = "memory"
	c.DatabaseDSN = ""
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.BcryptCost = 4
	return c
}

func TestNewApp_Memory(t *testing.T) {
	var logs bytes.Buffer
	app, err := newApp(context.Background(), memoryConfig(), &logs)
	require.NoError(t, err)
	require.NotNil(t, app.credentials)
	assert.NoError(t, app.close())
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }},
		{"empty key", func(c *config.Config) { c.SecretKey = "" }},
		{"bad hash algorithm", func(c *config.Config) { c.PasswordHashAlgorithm = "md5" }},
		{"bad bcrypt cost", func(c *config.Config) { c.BcryptCost = 99 }},
		{"bad driver", func(c *config.Config) { c.StorageDriver = "oracle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := memoryConfig()
			tt.mutate(c)

			var logs bytes.Buffer
			_, err := newApp(context.Background(), c, &logs)
			assert.Error(t, err)
		})
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	var logs bytes.Buffer
	app, err := newApp(context.Background(), memoryConfig(), &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestRun_ReturnsServerError(t *testing.T) {
	c := memoryConfig()
	c.EndpointAddrGRPC = "127.0.0.1:99999"

	var logs bytes.Buffer
	app, err := newApp(context.Background(), c, &logs)
	require.NoError(t, err)

	assert.Error(t, app.Run(context.Background()))
}
