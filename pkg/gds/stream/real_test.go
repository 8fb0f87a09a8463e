package stream

import "testing"

func TestEncodeReal(t *testing.T) {
	tests := []struct {
		in   float64
		want uint64
	}{
		{0, 0},
		{1, 0x4110000000000000},
		{0.5, 0x4080000000000000},
		{-2.5, 0xC128000000000000},
		{1e-3, 0x3E4189374BC6A7F0},
		{1e-9, 0x3944B82FA09B5A54},
	}
	for _, tt := range tests {
		if got := EncodeReal(tt.in); got != tt.want {
			t.Errorf("EncodeReal(%g) = %#016x, want %#016x", tt.in, got, tt.want)
		}
	}
}

func TestRealRoundTrip(t *testing.T) {
	for _, v := range []float64{1e-3, 1e-9, 1e-6, 0.25, 123.456, -7, 1e10} {
		if got := DecodeReal(EncodeReal(v)); got != v {
			t.Errorf("DecodeReal(EncodeReal(%g)) = %g", v, got)
		}
	}
}
