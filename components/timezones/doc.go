// Package timezones ships the canonical IANA zone list, the "timezone"
// select preset built from it (zones grouped by region) and a JSON search
// endpoint that lets a page narrow the list as the user types.
package timezones
