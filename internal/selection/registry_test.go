package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testConfig struct {
	Key      string
	Duration int
}

func newTestRegistry() *Registry[testConfig] {
	return NewRegistry(func(key string) testConfig {
		return testConfig{Key: key, Duration: 1}
	})
}

func TestRegistry_Toggle(t *testing.T) {
	t.Run("toggle inserts with defaults", func(t *testing.T) {
		r := newTestRegistry()

		present := r.Toggle("a")

		assert.True(t, present)
		assert.True(t, r.Contains("a"))

		v, ok := r.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v.Duration)
	})

	t.Run("toggle twice removes entirely", func(t *testing.T) {
		r := newTestRegistry()

		r.Toggle("a")
		present := r.Toggle("a")

		assert.False(t, present)
		assert.False(t, r.Contains("a"))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("membership follows toggle parity", func(t *testing.T) {
		r := newTestRegistry()

		sequence := []string{"a", "b", "a", "c", "b", "b", "a"}
		for _, k := range sequence {
			r.Toggle(k)
		}

		// a: 3 toggles, b: 3 toggles, c: 1 toggle
		assert.True(t, r.Contains("a"))
		assert.True(t, r.Contains("b"))
		assert.True(t, r.Contains("c"))
		assert.Equal(t, 3, r.Len())
	})

	t.Run("never produces duplicate keys", func(t *testing.T) {
		r := newTestRegistry()

		for i := 0; i < 5; i++ {
			r.Toggle("a") // odd count leaves it present
		}
		r.Toggle("b")

		assert.Equal(t, []string{"a", "b"}, r.Keys())
	})

	t.Run("re-select resets to defaults", func(t *testing.T) {
		r := newTestRegistry()

		r.Toggle("a")
		r.Update("a", func(c testConfig) testConfig {
			c.Duration = 7
			return c
		})
		r.Toggle("a")
		r.Toggle("a")

		v, _ := r.Get("a")
		assert.Equal(t, 1, v.Duration)
	})
}

func TestRegistry_Update(t *testing.T) {
	t.Run("applies patch to present entry", func(t *testing.T) {
		r := newTestRegistry()
		r.Toggle("a")

		applied := r.Update("a", func(c testConfig) testConfig {
			c.Duration = 3
			return c
		})

		assert.True(t, applied)
		v, _ := r.Get("a")
		assert.Equal(t, 3, v.Duration)
	})

	t.Run("update on absent key is a no-op", func(t *testing.T) {
		r := newTestRegistry()
		r.Toggle("a")

		applied := r.Update("b", func(c testConfig) testConfig {
			c.Duration = 99
			return c
		})

		assert.False(t, applied)
		assert.False(t, r.Contains("b"))
		assert.Equal(t, []string{"a"}, r.Keys())

		// Other entries untouched
		v, _ := r.Get("a")
		assert.Equal(t, 1, v.Duration)
	})

	t.Run("update after toggle off does not resurrect", func(t *testing.T) {
		r := newTestRegistry()
		r.Toggle("a")
		r.Toggle("a")

		applied := r.Update("a", func(c testConfig) testConfig {
			c.Duration = 5
			return c
		})

		assert.False(t, applied)
		assert.False(t, r.Contains("a"))
	})
}

func TestRegistry_Order(t *testing.T) {
	t.Run("values preserve insertion order", func(t *testing.T) {
		r := newTestRegistry()
		r.Toggle("c")
		r.Toggle("a")
		r.Toggle("b")

		keys := r.Keys()
		assert.Equal(t, []string{"c", "a", "b"}, keys)

		values := r.Values()
		assert.Len(t, values, 3)
		assert.Equal(t, "c", values[0].Key)
		assert.Equal(t, "b", values[2].Key)
	})

	t.Run("removal keeps remaining order", func(t *testing.T) {
		r := newTestRegistry()
		r.Toggle("a")
		r.Toggle("b")
		r.Toggle("c")

		r.Toggle("b")

		assert.Equal(t, []string{"a", "c"}, r.Keys())

		// Re-adding appends at the end
		r.Toggle("b")
		assert.Equal(t, []string{"a", "c", "b"}, r.Keys())
	})
}

func TestRegistry_Clear(t *testing.T) {
	r := newTestRegistry()
	r.Toggle("a")
	r.Toggle("b")

	r.Clear()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Keys())
	assert.False(t, r.Contains("a"))
}

func TestNewSet(t *testing.T) {
	s := NewSet()
	s.Toggle("bd-1")
	s.Toggle("bd-2")
	s.Toggle("bd-1")

	assert.Equal(t, []string{"bd-2"}, s.Values())
}
