// File: utils/constants.go
package utils

import "time"

// GuardKeyPrefix is the prefix used for Redis submission guard keys.
const GuardKeyPrefix = "submit:"

// GuardTTL is how long a submission guard stays claimed. Long enough to
// outlive any client retry storm, short enough not to block a genuine
// rebooking of the same slot the next day.
const GuardTTL = 24 * time.Hour

// RosterCachePrefix is the prefix for cached enabled-employee rosters.
const RosterCachePrefix = "roster:"

// RosterCacheTTL bounds staleness of the cached roster.
const RosterCacheTTL = 5 * time.Minute
