package repository

import (
	"encoding/json"
	"testing"

	"github.com/emmanuel7l7/chicken-farm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCartRoundTrip(t *testing.T) {
	saved := &models.Cart{
		UserID: "u1",
		Items: []models.CartItem{
			{ProductID: "layer-hen", Quantity: 2},
			{ProductID: "egg-tray", Quantity: 1},
		},
	}
	data, err := json.Marshal(saved)
	require.NoError(t, err)

	cart := decodeCart("u1", data)
	assert.Equal(t, "u1", cart.UserID)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.TotalItems())
}

func TestDecodeCartKeyOwnerWins(t *testing.T) {
	// The key, not the payload, says whose cart this is.
	data, err := json.Marshal(&models.Cart{UserID: "someone-else"})
	require.NoError(t, err)

	cart := decodeCart("u1", data)
	assert.Equal(t, "u1", cart.UserID)
}

func TestDecodeCartCorruptedPayload(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("not-json")},
		{"truncated", []byte(`{"user_id":"u1","items":[{"product_id":"layer-hen"`)},
		{"wrong shape", []byte(`[1,2,3]`)},
		{"empty", []byte("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A bad blob must never lock the user out of shopping: they
			// get a fresh empty cart instead of an error.
			cart := decodeCart("u1", tt.data)
			require.NotNil(t, cart)
			assert.Equal(t, "u1", cart.UserID)
			assert.True(t, cart.IsEmpty())
		})
	}
}
