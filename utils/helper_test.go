package utils

import (
	"reflect"
	"testing"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int32
		want   float64
	}{
		{"two places", 1.6666, 2, 1.67},
		{"half away from zero", 2.005, 2, 2.01},
		{"negative", -1.235, 2, -1.24},
		{"one place", 5.04, 1, 5.0},
		{"already exact", 3.14, 2, 3.14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundTo(tt.value, tt.places); got != tt.want {
				t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"A1", "B1", "A1", "A1", "C1"})
	want := []string{"A1", "B1", "C1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := UniqueSlice([]string(nil)); got != nil {
		t.Errorf("nil input should stay nil, got %v", got)
	}
}
