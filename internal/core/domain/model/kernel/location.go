package kernel

import (
	"errors"
	"fmt"
	"math"

	"crowddelivery/internal/pkg/errs"
	"crowddelivery/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using NewLocation to ensure validity.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a WGS84 point (latitude, longitude in degrees). It is used for
// order destinations, rider position samples and incident reports.
// Location is an immutable value object; the zero value is invalid and fails validation.
//
// Example:
//
//	loc, err := kernel.NewLocation(31.2304, 121.4737)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(31.230400,121.473700)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude.
//
// Parameters:
//   - lat: latitude, must be within [LatitudeMin..LatitudeMax]
//   - lng: longitude, must be within [LongitudeMin..LongitudeMax]
//
// Returns:
//   - Location: A valid location instance
//   - error: joined validation errors for every coordinate out of bounds
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// String returns "Location(lat,lng)". It implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// IsEqual compares two locations for equality.
// Both locations must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

func (l *Location) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax || math.IsNaN(lat) {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax || math.IsNaN(lng) {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}
