package client_test

import (
	"testing"

	"courierhub/internal/core/domain/model/client"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SelfServicePricing(t *testing.T) {
	rate, err := kernel.NewPercent(20)
	require.NoError(t, err)

	t.Run("active shipping uses the client value", func(t *testing.T) {
		c, err := client.NewClient(kernel.NewUUID(), kernel.NewUUID(), "Shop", "k-1", true, 15)
		require.NoError(t, err)

		p := c.SelfServicePricing(rate)

		assert.True(t, p.Confirmed)
		assert.InDelta(t, 15.0, p.Shipping, 0)
		assert.InDelta(t, 3.0, p.DeliveryFee, 0.0001)
	})

	t.Run("inactive shipping is unpriced and unconfirmed", func(t *testing.T) {
		c, err := client.NewClient(kernel.NewUUID(), kernel.NewUUID(), "Shop", "k-1", false, 15)
		require.NoError(t, err)

		p := c.SelfServicePricing(rate)

		assert.False(t, p.Confirmed)
		assert.Zero(t, p.Shipping)
		assert.Zero(t, p.DeliveryFee)
	})
}

func TestClient_Key(t *testing.T) {
	withKey, err := client.NewClient(kernel.NewUUID(), kernel.NewUUID(), "Shop", " abc ", false, 0)
	require.NoError(t, err)
	key, ok := withKey.Key()
	assert.True(t, ok)
	assert.Equal(t, "abc", key)

	withoutKey, err := client.NewClient(kernel.NewUUID(), kernel.NewUUID(), "Shop", "", false, 0)
	require.NoError(t, err)
	_, ok = withoutKey.Key()
	assert.False(t, ok)
}

func TestNewClient_Invalid(t *testing.T) {
	_, err := client.NewClient(kernel.NewUUID(), kernel.UUID{}, "", "", false, -1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "companyId")
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "shippingValue")
}
