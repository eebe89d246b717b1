package cfgloader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/reactive/cfgloader"
)

type demoConfig struct {
	Delay  time.Duration `yaml:"delay"  default:"1s"`
	People []string      `yaml:"people" validate:"min=1"`
	Token  string        `yaml:"token"  mask:"true"`
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		path := writeConfig(t, "people: [John, Terry]\n")

		cfg, err := cfgloader.LoadFile[demoConfig](path, cfgloader.WithSilent())

		require.NoError(t, err)
		assert.Equal(t, time.Second, cfg.Delay)
		assert.Equal(t, []string{"John", "Terry"}, cfg.People)
	})

	t.Run("expands env vars", func(t *testing.T) {
		t.Setenv("DEMO_DELAY", "250ms")
		path := writeConfig(t, "delay: ${DEMO_DELAY}\npeople: [Michael]\n")

		cfg, err := cfgloader.LoadFile[demoConfig](path, cfgloader.WithSilent())

		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	})

	t.Run("prints masked config", func(t *testing.T) {
		path := writeConfig(t, "people: [Graham]\ntoken: secret\n")

		cfg, err := cfgloader.LoadFile[demoConfig](path)

		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.Token)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := cfgloader.LoadFile[demoConfig](filepath.Join(t.TempDir(), "nope.yaml"))

		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeFileNotFound))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "people: [unterminated\n")

		_, err := cfgloader.LoadFile[demoConfig](path, cfgloader.WithSilent())

		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeInvalidYAML))
	})

	t.Run("validation failure", func(t *testing.T) {
		path := writeConfig(t, "people: []\n")

		_, err := cfgloader.LoadFile[demoConfig](path, cfgloader.WithSilent())

		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeValidationFailed))
		assert.Contains(t, err.Error(), "People")
	})

	t.Run("pointer target", func(t *testing.T) {
		path := writeConfig(t, "people: [John]\n")

		_, err := cfgloader.LoadFile[*demoConfig](path, cfgloader.WithSilent())

		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeInvalidTarget))
	})
}
