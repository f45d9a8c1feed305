package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowddelivery/internal/core/domain/model/kernel"
	"crowddelivery/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{name: "valid location", lat: 31.2304, lng: 121.4737},
		{name: "valid location at min bounds", lat: kernel.LatitudeMin, lng: kernel.LongitudeMin},
		{name: "valid location at max bounds", lat: kernel.LatitudeMax, lng: kernel.LongitudeMax},
		{name: "latitude too small", lat: -90.0001, lng: 0, wantErr: true},
		{name: "latitude too large", lat: 90.5, lng: 0, wantErr: true},
		{name: "longitude too small", lat: 0, lng: -180.1, wantErr: true},
		{name: "longitude too large", lat: 0, lng: 181, wantErr: true},
		{name: "NaN latitude", lat: math.NaN(), lng: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.lat, tt.lng)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Equal(t, kernel.Location{}, loc)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.lat, loc.Lat(), 1e-9)
			assert.InDelta(t, tt.lng, loc.Lng(), 1e-9)
			require.NoError(t, loc.Validate())
		})
	}
}

func TestNewLocation_ReportsBothCoordinates(t *testing.T) {
	_, err := kernel.NewLocation(100, 200)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lat")
	assert.Contains(t, err.Error(), "lng")
}

func TestLocation_Validate(t *testing.T) {
	var zero kernel.Location
	require.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
}

func TestLocation_String(t *testing.T) {
	loc, err := kernel.NewLocation(1.5, -2.25)
	require.NoError(t, err)

	assert.Equal(t, "Location(1.500000,-2.250000)", loc.String())
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(10, 20)
	b, _ := kernel.NewLocation(10, 20)
	c, _ := kernel.NewLocation(10, 20.0001)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = a.IsEqual(kernel.Location{})
	require.Error(t, err)
}
