package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (1 hour)
	AccessTokenTTL = 1 * time.Hour

	// AccessTokenTTLSeconds is the time-to-live for access tokens in seconds (3600 seconds = 1 hour)
	AccessTokenTTLSeconds = 3600
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Visitor register constants
const (
	// NationalIDLength is the exact length of a TC identity number
	NationalIDLength = 11

	// DefaultPageSize is the page size used when the users list request does not specify one
	DefaultPageSize = 10

	// DurationUnit is the display unit appended to rendered visit durations
	DurationUnit = "dakika"
)

// Role names stored on user accounts and carried in token claims
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Cache key constants
const (
	// SettingsCacheKey is the redis key holding the serialized settings map
	SettingsCacheKey = "settings:all"
)
