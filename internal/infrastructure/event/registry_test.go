package event

import (
	"testing"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	t.Run("keeps registration order and includes wildcards", func(t *testing.T) {
		r := NewHandlerRegistry()
		first := newRecordingHandler()
		wildcard := newRecordingHandler()
		second := newRecordingHandler()
		r.Register(first, "A")
		r.Register(wildcard)
		r.Register(second, "A", "B")

		assert.Equal(t, []shared.EventHandler{first, wildcard, second}, r.GetHandlers("A"))
		assert.Equal(t, []shared.EventHandler{wildcard, second}, r.GetHandlers("B"))
		assert.Equal(t, []shared.EventHandler{wildcard}, r.GetHandlers("C"))
		assert.Equal(t, 3, r.Len())
	})

	t.Run("registering again merges types without duplicating delivery", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := newRecordingHandler()
		r.Register(h, "A")
		r.Register(h, "A", "B")

		assert.Len(t, r.GetHandlers("A"), 1)
		assert.Len(t, r.GetHandlers("B"), 1)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("unregister removes every subscription", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := newRecordingHandler()
		other := newRecordingHandler()
		r.Register(h, "A")
		r.Register(other, "A")
		r.Unregister(h)

		assert.Equal(t, []shared.EventHandler{other}, r.GetHandlers("A"))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("no handlers", func(t *testing.T) {
		assert.Empty(t, NewHandlerRegistry().GetHandlers("A"))
	})
}
