package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAutoEscalation(t *testing.T) {
	t.Run("escalates unknown when harmful", func(t *testing.T) {
		next, changed := ApplyAutoEscalation(StatusUnknown, true)
		assert.True(t, changed)
		assert.Equal(t, StatusSuspicious, next)
	})

	t.Run("does not escalate when not harmful", func(t *testing.T) {
		next, changed := ApplyAutoEscalation(StatusUnknown, false)
		assert.False(t, changed)
		assert.Equal(t, StatusUnknown, next)
	})

	t.Run("never overrides trusted", func(t *testing.T) {
		next, changed := ApplyAutoEscalation(StatusTrusted, true)
		assert.False(t, changed)
		assert.Equal(t, StatusTrusted, next)
	})

	t.Run("suspicious stays suspicious", func(t *testing.T) {
		next, changed := ApplyAutoEscalation(StatusSuspicious, true)
		assert.False(t, changed)
		assert.Equal(t, StatusSuspicious, next)
	})
}

func TestApplyManual(t *testing.T) {
	t.Run("operator can set any valid status", func(t *testing.T) {
		for _, target := range ValidStatuses {
			next, ok := ApplyManual(StatusSuspicious, target)
			assert.True(t, ok)
			assert.Equal(t, target, next)
		}
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		next, ok := ApplyManual(StatusTrusted, Status("blocked"))
		assert.False(t, ok)
		assert.Equal(t, StatusTrusted, next)
	})
}
