package timezone

import (
	"hotel/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

// Init loads the application timezone. An empty or unknown name falls back to UTC.
func Init(name string) {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		appLocation = time.UTC

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")

		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", name).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	if appLocation == nil {
		return time.Now().UTC()
	}

	return time.Now().In(appLocation)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	if appLocation == nil {
		return t.UTC()
	}

	return t.In(appLocation)
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Date drops the clock part of t, keeping its calendar day.
func Date(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constant.DateFormat, value) //nolint:wrapcheck
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return Date(t).Format(constant.DateFormat)
}

// Nights counts whole days from checkIn to checkOut. It is zero or negative
// when checkOut is not after checkIn.
func Nights(checkIn, checkOut time.Time) int {
	return int((Date(checkOut).Unix() - Date(checkIn).Unix()) / constant.SecondsPerDay)
}
