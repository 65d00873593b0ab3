package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aftersort/internal/project"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	projects := []project.Descriptor{{Root: "."}}

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "projects only", cfg: Config{Projects: projects}},
		{name: "config file only", cfg: Config{ConfigPath: "aftersort.hcl"}},
		{name: "nothing to do", cfg: Config{}, wantErr: "at least one project"},
		{name: "negative workers", cfg: Config{Projects: projects, Workers: -1}, wantErr: "workers must be positive"},
		{name: "bad auxiliary", cfg: Config{Projects: projects, Auxiliary: "drop"}, wantErr: "invalid auxiliary policy"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
