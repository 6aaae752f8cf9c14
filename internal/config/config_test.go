package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_SOURCE", "SYMBOL", "REQUEST_TIMEOUT", "LEVEL_LOOKBACK", "GIFT_NIFTY_SYMBOLS", "LEVEL_NEAR_THRESHOLD", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceReal, cfg.DataSource)
	assert.Equal(t, "^NSEI", cfg.Symbol)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.LevelLookback)
	assert.Equal(t, []string{"^NSEI", "NIFTY.SI", "NIFTY.SG"}, cfg.GiftNiftySymbols)
	assert.Equal(t, 0.02, cfg.NearThreshold)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.UseMock())
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "MOCK")
	t.Setenv("REQUEST_TIMEOUT", "10")
	t.Setenv("LEVEL_LOOKBACK", "-3")
	t.Setenv("GIFT_NIFTY_SYMBOLS", " A , ,B ")
	t.Setenv("LEVEL_NEAR_THRESHOLD", "0.05")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.UseMock())
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.LevelLookback)
	assert.Equal(t, []string{"A", "B"}, cfg.GiftNiftySymbols)
	assert.Equal(t, 0.05, cfg.NearThreshold)
	assert.False(t, cfg.MetricsEnabled)
}

func TestValidate(t *testing.T) {
	valid := Config{Symbol: "^NSEI", GiftNiftySymbols: []string{"^NSEI"}, RequestTimeout: time.Second, NearThreshold: 0.02}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: true},
		{name: "threshold too wide", mutate: func(c *Config) { c.NearThreshold = 1.5 }, wantErr: true},
		{name: "no gift symbols", mutate: func(c *Config) { c.GiftNiftySymbols = nil }, wantErr: true},
		{name: "no symbol", mutate: func(c *Config) { c.Symbol = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateTelegram(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateTelegram())
	cfg.TelegramToken = "token"
	assert.Error(t, cfg.ValidateTelegram())
	cfg.TelegramChatID = 42
	assert.NoError(t, cfg.ValidateTelegram())
}

func TestLocationFallback(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Invalid"}
	_, offset := time.Now().In(cfg.Location()).Zone()
	assert.Equal(t, 19800, offset)
}
