package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPIN(t *testing.T) {
	hashService := &HashService{}

	tests := []struct {
		name        string
		pin         string
		expectError bool
	}{
		{
			name:        "Valid PIN",
			pin:         "4321",
			expectError: false,
		},
		{
			name:        "Empty PIN",
			pin:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashedPIN, err := hashService.HashPIN(tt.pin)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, hashedPIN)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, hashedPIN)
				assert.NotEqual(t, tt.pin, hashedPIN)
			}
		})
	}
}

func TestComparePIN(t *testing.T) {
	hashService := &HashService{}

	tests := []struct {
		name        string
		pin         string
		hashedPIN   string
		setup       func() string
		expectMatch bool
	}{
		{
			name: "Matching PIN",
			pin:  "4321",
			setup: func() string {
				hashedPIN, _ := hashService.HashPIN("4321")
				return hashedPIN
			},
			expectMatch: true,
		},
		{
			name: "Non-Matching PIN",
			pin:  "1234",
			setup: func() string {
				hashedPIN, _ := hashService.HashPIN("4321")
				return hashedPIN
			},
			expectMatch: false,
		},
		{
			name:        "Garbage hash",
			pin:         "4321",
			hashedPIN:   "not-a-hash",
			expectMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hashedPIN string
			if tt.setup != nil {
				hashedPIN = tt.setup()
			} else {
				hashedPIN = tt.hashedPIN
			}

			match := hashService.ComparePIN(hashedPIN, tt.pin)
			assert.Equal(t, tt.expectMatch, match)
		})
	}
}
