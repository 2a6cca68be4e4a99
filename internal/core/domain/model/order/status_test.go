package order_test

import (
	"testing"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status order.Status
		want   string
	}{
		{order.Started, "STARTED"},
		{order.Accepted, "ACCEPTED"},
		{order.Received, "RECEIVED"},
		{order.Delivered, "DELIVERED"},
		{order.Canceled, "CANCELED"},
		{order.Postponed, "POSTPOND"},
		{order.Unknown, "UNKNOWN"},
		{order.Status(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("parses every wire value", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("is case insensitive", func(t *testing.T) {
		parsed, err := order.ParseStatus(" delivered ")
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, parsed)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		for _, in := range []string{"", "UNKNOWN", "POSTPONED", "shipped"} {
			_, err := order.ParseStatus(in)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.AllStatuses() {
		require.NoError(t, s.Validate())
	}
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(7).Validate())
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("canceled is terminal for every target", func(t *testing.T) {
		for _, target := range order.AllStatuses() {
			_, err := order.Canceled.TransitionTo(target)
			require.ErrorIs(t, err, errs.ErrInvalidTransition, target.String())
		}
	})

	t.Run("non terminal statuses reach any status", func(t *testing.T) {
		for _, from := range order.AllStatuses() {
			if from.IsTerminal() {
				continue
			}
			for _, to := range order.AllStatuses() {
				got, err := from.TransitionTo(to)
				require.NoError(t, err)
				assert.Equal(t, to, got)
			}
		}
	})

	t.Run("rejects invalid targets", func(t *testing.T) {
		_, err := order.Started.TransitionTo(order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Prerequisites(t *testing.T) {
	assert.Equal(t, []order.Status{order.Accepted}, order.Received.Prerequisites())
	assert.Equal(t, []order.Status{order.Accepted, order.Received}, order.Delivered.Prerequisites())
	assert.Empty(t, order.Accepted.Prerequisites())
	assert.Empty(t, order.Canceled.Prerequisites())
	assert.Empty(t, order.Postponed.Prerequisites())
}

func TestStatus_IsSettled(t *testing.T) {
	assert.True(t, order.Delivered.IsSettled())
	assert.True(t, order.Canceled.IsSettled())
	assert.False(t, order.Received.IsSettled())
	assert.False(t, order.Postponed.IsSettled())
}
