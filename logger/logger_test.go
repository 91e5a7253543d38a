package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Prefix and level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "", &buf)
		require.NoError(t, err)

		l.Info("Router initialized")
		l.Warning("cache disabled")
		l.Error("boom")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[0], "[APP] [INFO] Router initialized"))
		assert.True(t, strings.HasSuffix(lines[1], "[APP] [WARNING] cache disabled"))
		assert.True(t, strings.HasSuffix(lines[2], "[APP] [ERROR] boom"))
	})

	t.Run("Debug hidden until enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("GEN", "", &buf)
		require.NoError(t, err)

		l.Debug("hidden")
		assert.Empty(t, buf.String())

		require.NoError(t, l.SetLevel("debug"))
		l.Debug("shown")
		assert.Contains(t, buf.String(), "[GEN] [DEBUG] shown")

		assert.Error(t, l.SetLevel("loud"))
	})

	t.Run("Fields", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("SVC", "", &buf)
		require.NoError(t, err)

		l.With("width", 4).With("height", 3).Info("generated")
		assert.Contains(t, buf.String(), "[SVC] [INFO] generated height=3 width=4")
	})

	t.Run("Color wraps prefix", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "\033[32m", &buf)
		require.NoError(t, err)

		l.Info("hi")
		assert.Contains(t, buf.String(), "\033[32m[APP]\033[0m [INFO] hi")
	})

	t.Run("Invalid arguments", func(t *testing.T) {
		_, err := New("", "", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyName)

		_, err = New("APP", "", nil)
		assert.Error(t, err)
	})
}
