package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "9:00", want: "09:00"},
		{in: "18:30:00", want: "18:30"},
		{in: "23:59", want: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "10:7", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_CompareByMinutes(t *testing.T) {
	// "9:00" > "18:00" лексически, но не по минутам
	assert.True(t, TimeString("9:00").IsBefore("18:00"))
	assert.True(t, TimeString("18:00").IsAfter("9:00"))
	assert.True(t, TimeString("09:00").Equal("9:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:00"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:15:00")))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
