package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification_Display(t *testing.T) {
	tests := []struct {
		name     string
		class    Classification
		expected string
	}{
		{"no flags", Classification{}, ""},
		{"corrosive and toxic", Classification{Corrosive: true, Toxic: true}, "C, T"},
		{"all flags", Classification{Corrosive: true, Reactive: true, Explosive: true, Toxic: true, Flammable: true, Biological: true}, "C, R, E, T, I, B"},
		{"flammable only", Classification{Flammable: true}, "I"},
		{"order is fixed regardless of flag grouping", Classification{Biological: true, Corrosive: true}, "C, B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.class.Display())
		})
	}
}

func TestClassification_Codes(t *testing.T) {
	class := Classification{Reactive: true, Explosive: true}
	assert.Equal(t, []string{"R", "E"}, class.Codes())
}

func TestClassification_IsZero(t *testing.T) {
	assert.True(t, Classification{}.IsZero())
	assert.False(t, Classification{Toxic: true}.IsZero())
}
