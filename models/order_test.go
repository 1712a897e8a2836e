package models

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaikahub/zaika-api/utils"
)

func TestCanTransitionTo(t *testing.T) {
	nonTerminal := []string{StatusPending, StatusPreparing, StatusReady}
	terminal := []string{StatusConfirmed, StatusCancelled}

	// Every known target, including self, is reachable from a non-terminal
	// state.
	for _, from := range nonTerminal {
		for _, to := range OrderStatuses {
			order := Order{Status: from}
			assert.NoError(t, order.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	// Terminal states refuse every transition.
	for _, from := range terminal {
		for _, to := range OrderStatuses {
			order := Order{Status: from}
			err := order.CanTransitionTo(to)
			require.Error(t, err, "%s -> %s", from, to)
			assert.True(t, errors.Is(err, utils.ErrInvalidTransition))
		}
	}
}

func TestCanTransitionToUnknownStatus(t *testing.T) {
	order := Order{Status: StatusPending}
	err := order.CanTransitionTo("shipped")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestCancelThenReadyFails(t *testing.T) {
	order := Order{Status: StatusPending}
	require.NoError(t, order.CanTransitionTo(StatusCancelled))
	order.Status = StatusCancelled

	err := order.CanTransitionTo(StatusReady)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInvalidTransition))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&Order{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Order{Status: StatusPreparing}).IsTerminal())
	assert.False(t, (&Order{Status: StatusReady}).IsTerminal())
	assert.True(t, (&Order{Status: StatusConfirmed}).IsTerminal())
	assert.True(t, (&Order{Status: StatusCancelled}).IsTerminal())
}

func TestNewOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		num := NewOrderNumber()
		assert.Regexp(t, pattern, num)
		assert.False(t, seen[num], "duplicate order number %s", num)
		seen[num] = true
	}
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority("urgent"))
	assert.False(t, ValidPriority(""))
}
