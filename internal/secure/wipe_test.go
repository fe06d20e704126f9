package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipe(t *testing.T) {
	t.Parallel()

	t.Run("zeroes non-empty slice", func(t *testing.T) {
		data := []byte("hunter2")
		Wipe(data)
		assert.Equal(t, make([]byte, 7), data)
	})

	t.Run("already zero is a no-op", func(t *testing.T) {
		data := make([]byte, 16)
		Wipe(data)
		Wipe(data)
		assert.Equal(t, make([]byte, 16), data)
	})

	t.Run("handles empty and nil slices", func(t *testing.T) {
		Wipe([]byte{})
		Wipe(nil)
	})

	t.Run("only touches the given length", func(t *testing.T) {
		backing := []byte("abcdef")
		Wipe(backing[:3])
		assert.Equal(t, []byte{0, 0, 0, 'd', 'e', 'f'}, backing)
	})
}

func TestBackend(t *testing.T) {
	t.Parallel()

	assert.Contains(t, []string{"memguard", "purego"}, Backend())
}
