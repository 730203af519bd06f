// Package sntp provides an NTP-corrected wall clock source.
//
// Source decorates an inner raw source: wall readings are shifted by an
// offset learned from one or more NTP servers, while monotonic readings pass
// through untouched — a network-derived correction must never bend the
// monotonic timeline. The offset is applied through the checked timespec
// arithmetic, so a correction that would push a reading outside the
// representable range surfaces as an error instead of wrapping.
//
// Sync queries the configured servers once and stores the median of the
// validated clock offsets. Queries are rate limited; callers own the retry
// policy.
package sntp
