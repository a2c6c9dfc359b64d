package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Run("short string unchanged", func(t *testing.T) {
		assert.Equal(t, "sin conexión", Truncate("sin conexión", 500))
	})

	t.Run("cut inside multi-byte rune backs off", func(t *testing.T) {
		msg := strings.Repeat("a", 499) + "ñandú sin conexión"

		got := Truncate(msg, 500)

		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, strings.Repeat("a", 499), got)
	})

	t.Run("cut on rune boundary keeps the rune", func(t *testing.T) {
		msg := strings.Repeat("a", 498) + "ñandú"

		got := Truncate(msg, 500)

		assert.Equal(t, strings.Repeat("a", 498)+"ñ", got)
	})

	t.Run("three byte rune split at every offset", func(t *testing.T) {
		msg := "ab€"
		for max := 2; max < len(msg); max++ {
			got := Truncate(msg, max)
			assert.True(t, utf8.ValidString(got))
			assert.Equal(t, "ab", got)
		}
	})

	t.Run("invalid bytes dropped", func(t *testing.T) {
		assert.Equal(t, "error", Truncate("err\xffor", 500))
	})
}
