package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"90", 90, false},
		{"2.5", 2.5, false},
		{"1:30", 90, false},
		{"01:05.250", 65.25, false},
		{"  0:10 ", 10, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1:xx", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimecode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
