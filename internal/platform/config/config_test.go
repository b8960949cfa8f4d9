package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://docflow@localhost/docflow?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "docflow.mail.outbox", cfg.Kafka.MailTopic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.Redis.URL)

	offsets, err := cfg.Notice.ParsedOffsets()
	require.NoError(t, err)
	assert.Equal(t, []int{60, 30}, offsets)

	hour, minute, err := cfg.Notice.StartClock()
	require.NoError(t, err)
	assert.Equal(t, 6, hour)
	assert.Equal(t, 0, minute)
	assert.Equal(t, "24h0m0s", cfg.Notice.Interval.String())
	assert.Equal(t, "36h0m0s", cfg.Notice.DedupeTTL.String())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("NOTICE_OFFSETS", "90, 14,90")
	t.Setenv("NOTICE_AT", "23:30")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)

	offsets, err := cfg.Notice.ParsedOffsets()
	require.NoError(t, err)
	assert.Equal(t, []int{90, 14}, offsets)

	hour, minute, err := cfg.Notice.StartClock()
	require.NoError(t, err)
	assert.Equal(t, 23, hour)
	assert.Equal(t, 30, minute)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database", env: map[string]string{"DATABASE_URL": ""}},
		{name: "bad offsets", env: map[string]string{"DATABASE_URL": "postgres://x", "NOTICE_OFFSETS": "sixty"}},
		{name: "negative offset", env: map[string]string{"DATABASE_URL": "postgres://x", "NOTICE_OFFSETS": "-1"}},
		{name: "empty offsets", env: map[string]string{"DATABASE_URL": "postgres://x", "NOTICE_OFFSETS": " , "}},
		{name: "bad clock", env: map[string]string{"DATABASE_URL": "postgres://x", "NOTICE_AT": "6am"}},
		{name: "bad zone", env: map[string]string{"DATABASE_URL": "postgres://x", "NOTICE_TZ": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
