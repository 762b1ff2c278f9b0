package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		th, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), th)
	})

	t.Run("file overrides only what it sets", func(t *testing.T) {
		path := writeTheme(t, t.TempDir(), "theme.hcl", `
			graph {
				rankdir = "TB"
			}
			hover {
				stroke_width = 8
			}
		`)

		th, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "TB", th.Graph.RankDir)
		assert.Equal(t, 8, th.Hover.StrokeWidth)
		// untouched values keep their defaults
		assert.Equal(t, 2.0, th.Graph.RankSep)
		assert.Equal(t, 1.0, th.Palette.Saturation)
	})

	t.Run("color constants resolve through the eval context", func(t *testing.T) {
		path := writeTheme(t, t.TempDir(), "theme.hcl", `
			palette {
				neutral = colors.black
			}
		`)

		th, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "black", th.Palette.Neutral)
	})

	t.Run("directory merges files in sorted order", func(t *testing.T) {
		dir := t.TempDir()
		writeTheme(t, dir, "10-base.hcl", `
			palette {
				saturation = 0.5
				alpha      = 0.7
			}
		`)
		writeTheme(t, dir, "20-override.hcl", `
			palette {
				saturation = 0.25
			}
		`)

		th, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 0.25, th.Palette.Saturation, "later file wins")
		assert.Equal(t, 0.7, th.Palette.Alpha, "earlier file's untouched value survives")
	})

	t.Run("syntax error is fatal", func(t *testing.T) {
		path := writeTheme(t, t.TempDir(), "broken.hcl", `graph {`)

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to parse theme file")
	})

	t.Run("unknown attribute is fatal", func(t *testing.T) {
		path := writeTheme(t, t.TempDir(), "unknown.hcl", `
			graph {
				rankdirr = "LR"
			}
		`)

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to decode theme file")
	})

	t.Run("missing path is fatal", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
		require.Error(t, err)
	})
}
