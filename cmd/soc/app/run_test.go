package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socpredict/internal/apperrors"
	"socpredict/internal/config"
)

func TestReloadMsg(t *testing.T) {
	t.Parallel()

	fileCfg := func() *config.Config {
		cfg := config.DefaultConfig()
		cfg.UI.Theme = "light"
		return cfg
	}

	tests := []struct {
		name      string
		opts      RunOptions
		wantTheme string
	}{
		{"file theme", RunOptions{}, "light"},
		{"flag wins", RunOptions{ThemeOverride: "dark"}, "dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.opts.reloadMsg(fileCfg(), nil)
			assert.NoError(t, msg.Err)
			assert.Equal(t, tt.wantTheme, msg.Theme)
			assert.Nil(t, msg.Service)
		})
	}
}

func TestReloadMsgBuildsService(t *testing.T) {
	t.Parallel()
	svc := &fakeService{}
	var seen *config.Config
	opts := RunOptions{NewService: func(cfg *config.Config) Service {
		seen = cfg
		return svc
	}}

	cfg := config.DefaultConfig()
	msg := opts.reloadMsg(cfg, nil)
	assert.Same(t, svc, msg.Service)
	assert.Same(t, cfg, seen)
}

func TestReloadMsgError(t *testing.T) {
	t.Parallel()
	called := false
	opts := RunOptions{
		ThemeOverride: "dark",
		NewService: func(*config.Config) Service {
			called = true
			return nil
		},
	}

	msg := opts.reloadMsg(nil, apperrors.NewConfig("invalid ui.theme", nil))
	require.Error(t, msg.Err)
	assert.Empty(t, msg.Theme)
	assert.False(t, called)
}
