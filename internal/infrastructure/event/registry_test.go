package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	t.Run("type-specific registration", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := &recordingHandler{}
		registry.Register(handler, "absence.requested")

		assert.Len(t, registry.GetHandlers("absence.requested"), 1)
		assert.Empty(t, registry.GetHandlers("report.submitted"))
	})

	t.Run("wildcard registration matches every type", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := &recordingHandler{}
		registry.Register(handler)

		assert.Len(t, registry.GetHandlers("absence.requested"), 1)
		assert.Len(t, registry.GetHandlers("anything.else"), 1)
	})

	t.Run("unregister removes from all types", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := &recordingHandler{}
		registry.Register(handler, "absence.requested", "absence.approved")
		registry.Unregister(handler)

		assert.Empty(t, registry.GetHandlers("absence.requested"))
		assert.Empty(t, registry.GetHandlers("absence.approved"))
	})

	t.Run("multiple handlers preserved in order", func(t *testing.T) {
		registry := NewHandlerRegistry()
		first := &recordingHandler{}
		second := &recordingHandler{}
		registry.Register(first, "report.submitted")
		registry.Register(second, "report.submitted")

		handlers := registry.GetHandlers("report.submitted")
		assert.Len(t, handlers, 2)
	})
}
