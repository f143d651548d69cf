// Package timezone anchors every clock reading to the property's timezone, read from
// APP_TIMEZONE when the package loads (UTC when unset or unknown).
//
// Two kinds of time flow through the service:
//
//   - Instants such as created_at or last_login come from Now and are rendered with Format.
//   - Stay dates (check-in, check-out, season bounds) are calendar days. They are parsed with
//     ParseDate and normalised with Date to UTC midnight, so night counts and range checks
//     never see a DST shift. Today gives the property's current day in that form.
package timezone
