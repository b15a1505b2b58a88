package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRingerMode(t *testing.T) {
	tests := []struct {
		input   string
		want    RingerMode
		wantErr bool
	}{
		{"normal", RingerNormal, false},
		{"Vibrate", RingerVibrate, false},
		{" SILENT ", RingerSilent, false},
		{"loud", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRingerMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHostValidate(t *testing.T) {
	err := Host{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inventory")
	assert.Contains(t, err.Error(), "activities")
}
