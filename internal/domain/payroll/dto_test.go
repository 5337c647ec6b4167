package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListMeta(t *testing.T) {
	t.Run("page inside the total", func(t *testing.T) {
		meta := NewListMeta(0, 20, 50)

		assert.Equal(t, int64(20), meta.InRange)
		assert.Equal(t, int64(20), meta.Showing)
		assert.Equal(t, int64(50), meta.Total)
	})

	t.Run("page running past the total is clamped", func(t *testing.T) {
		meta := NewListMeta(40, 20, 50)

		assert.Equal(t, int64(50), meta.InRange)
		assert.Equal(t, int64(10), meta.Showing)
	})

	t.Run("offset beyond the total shows nothing", func(t *testing.T) {
		meta := NewListMeta(60, 20, 50)

		assert.Equal(t, int64(50), meta.InRange)
		assert.Equal(t, int64(0), meta.Showing)
	})
}
