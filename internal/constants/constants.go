package constants

import "time"

const (
	// StatsCacheTTL bounds how long one fetched frequency table is
	// reused before the remote source is contacted again.
	StatsCacheTTL = 1 * time.Hour

	FetchTimeout = 5 * time.Second
)

const (
	DefaultDrawSets  = 5
	DefaultPickSize  = 7
	DefaultSmoothing = 100

	MaxDrawSets = 20
)

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	RecentFetchLimit = 20
)
