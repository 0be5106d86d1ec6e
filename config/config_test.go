package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		App: APP{Name: "storeit", Port: "8080"},
		Backend: Backend{
			Endpoint:          "http://localhost:8080",
			ProjectID:         "storeit",
			SecretKey:         "secret",
			DatabaseID:        "public",
			FilesCollectionID: "files",
			UsersCollectionID: "users",
			BucketID:          "uploads",
		},
		S3: S3{Region: "us-east-1"},
		MQ: MQ{Exchange: "storeit.revalidate", ExchangeType: "direct", QueueName: "paths"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_DATABASE_ID", "")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg := Load()

	assert.Equal(t, "public", cfg.Backend.DatabaseID)
	assert.Equal(t, "files", cfg.Backend.FilesCollectionID)
	assert.Equal(t, "users", cfg.Backend.UsersCollectionID)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.True(t, cfg.S3.UsePathStyle)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing secret key",
			mutate:  func(c *Config) { c.Backend.SecretKey = "" },
			wantErr: "config Config.Backend.SecretKey: failed on 'required'",
		},
		{
			name:    "endpoint must be an url",
			mutate:  func(c *Config) { c.Backend.Endpoint = "not a url" },
			wantErr: "config Config.Backend.Endpoint: failed on 'url'",
		},
		{
			name:    "database id is not an identifier",
			mutate:  func(c *Config) { c.Backend.DatabaseID = `public"; DROP SCHEMA x; --` },
			wantErr: "config Config.Backend.DatabaseID: failed on 'sqlident'",
		},
		{
			name:    "collection id starts with a digit",
			mutate:  func(c *Config) { c.Backend.FilesCollectionID = "1files" },
			wantErr: "config Config.Backend.FilesCollectionID: failed on 'sqlident'",
		},
		{
			name:   "non default collections",
			mutate: func(c *Config) { c.Backend.DatabaseID, c.Backend.FilesCollectionID = "storage", "Documents" },
		},
		{
			name:    "files and users share a table",
			mutate:  func(c *Config) { c.Backend.FilesCollectionID = "users" },
			wantErr: "config Config.Backend.FilesCollectionID: failed on 'nefield'",
		},
		{
			name:    "unknown exchange type",
			mutate:  func(c *Config) { c.MQ.ExchangeType = "headers-ish" },
			wantErr: "config Config.MQ.ExchangeType: failed on 'oneof'",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	c := validConfig()
	_, err := c.DBDSN()
	require.Error(t, err)

	c.DB = DB{User: "store", Password: "p@ss", Name: "storeit", Host: "db", Port: "5432"}
	dsn, err := c.DBDSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://store:p%40ss@db:5432/storeit", dsn)

	c.MQ.User, c.MQ.Password, c.MQ.Host, c.MQ.AmqpPort, c.MQ.Vhost = "guest", "guest", "mq", "5672", "/"
	amqp, err := c.AMQPDSN()
	require.NoError(t, err)
	assert.Equal(t, "amqp://guest:guest@mq:5672/%2F", amqp)
}
