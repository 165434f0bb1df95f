package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycles(t *testing.T) {
	t.Run("Fonts wrap around", func(t *testing.T) {
		font := AvailableFonts[0]
		for range AvailableFonts {
			font = NextFont(font)
		}
		assert.Equal(t, AvailableFonts[0], font)
		assert.Equal(t, AvailableFonts[0], NextFont("Comic Sans"))
	})

	t.Run("Colors wrap around", func(t *testing.T) {
		last := AvailableColors[len(AvailableColors)-1].Name
		assert.Equal(t, AvailableColors[0].Name, NextColor(last))
		assert.Equal(t, "white", NextColor("black"))
		assert.Equal(t, AvailableColors[0].Name, NextColor("chartreuse"))
	})

	t.Run("Settings helpers", func(t *testing.T) {
		s := Default().WithNextFont().WithNextBackground().WithNextForeground()
		assert.Equal(t, AvailableFonts[1], s.FontName)
		assert.Equal(t, "white", s.Background)
		assert.Equal(t, "gray", s.Foreground)
		assert.Equal(t, "Roboto", Default().FontName, "value receivers leave the original alone")
	})
}

func TestColorByName(t *testing.T) {
	c, err := ColorByName("teal")
	require.NoError(t, err)
	assert.Equal(t, "#008080", c.Hex)

	_, err = ColorByName("nope")
	assert.Error(t, err)
}

func TestFontSizeBounds(t *testing.T) {
	s := Default()
	assert.Equal(t, DefaultFontSize+FontSizeStep, s.IncreaseFontSize().FontSize)
	assert.Equal(t, DefaultFontSize-FontSizeStep, s.DecreaseFontSize().FontSize)
	assert.Equal(t, MaxFontSize, s.AdjustFontSize(1000).FontSize)
	assert.Equal(t, MinFontSize, s.AdjustFontSize(-1000).FontSize)
}

func TestLoadSave(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "conf", "settings"+ext)

			s, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, Default(), s, "missing file yields defaults")

			want := Default().WithNextFont().IncreaseFontSize().WithNextBackground()
			require.NoError(t, Save(path, want))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("Partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte("font_size = 20\n"), 0644))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 20, got.FontSize)
		assert.Equal(t, Default().FontName, got.FontName)
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("background_color: chartreuse\nfont_size: 2\n"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "settings.ini"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.ErrorIs(t, Save(filepath.Join(t.TempDir(), "settings.ini"), Default()), ErrUnsupportedFormat)
	})
}
