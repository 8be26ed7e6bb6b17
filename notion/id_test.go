package notion

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"removes dashes", "8b431394-c095-4259-95c5-fc1a127a873a", "8b431394c095425995c5fc1a127a873a"},
		{"already clean", "8b431394c095425995c5fc1a127a873a", "8b431394c095425995c5fc1a127a873a"},
		{"empty string", "", ""},
		{"plain name untouched", "COLLECT", "COLLECT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.in))
		})
	}
}

func TestFormatID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adds dashes", "8b431394c095425995c5fc1a127a873a", "8b431394-c095-4259-95c5-fc1a127a873a"},
		{"already dashed is reformatted", "8b431394-c095-4259-95c5-fc1a127a873a", "8b431394-c095-4259-95c5-fc1a127a873a"},
		{"short string unchanged", "abc123", "abc123"},
		{"long string unchanged", strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"name unchanged", "COLLECT", "COLLECT"},
		{"empty unchanged", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatID(tt.in))
		})
	}
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("8b431394c095425995c5fc1a127a873a"))
	assert.False(t, IsValidID("8b431394-c095-4259-95c5-fc1a127a873a"), "dashed form is not clean")
	assert.False(t, IsValidID("8B431394C095425995C5FC1A127A873A"), "uppercase is not clean")
	assert.False(t, IsValidID("8b431394c095425995c5fc1a127a873"), "31 chars")
	assert.False(t, IsValidID("zb431394c095425995c5fc1a127a873a"), "non-hex")
	assert.False(t, IsValidID(""))
}

// Dash round-trip is idempotent for generated identifiers.
func TestIDRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		dashed := uuid.NewString()
		clean := NormalizeID(dashed)

		assert.True(t, IsValidID(clean))
		assert.Equal(t, dashed, FormatID(clean))
		assert.Equal(t, clean, NormalizeID(FormatID(clean)))
		assert.Equal(t, FormatID(clean), FormatID(NormalizeID(FormatID(clean))))
	}
}
