// Package timezone provides time utilities for the application.
//
// Usage Examples:
//
//  1. Initialization from configuration:
//     timezone.Init(cfg.App.Timezone)
//
//  2. Timestamps in app timezone:
//     now := timezone.Now()
//     formatted := timezone.Format(now, time.RFC3339)
//
//  3. Calendar days:
//     in, err := timezone.ParseDate("2024-03-05")
//     nights := timezone.Nights(in, out)
//
// Booking dates are calendar days without a zone; they are always carried as
// UTC midnight so that day arithmetic never crosses a DST boundary.
package timezone
