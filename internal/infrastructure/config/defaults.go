package config

import "time"

const (
	DefaultHTTPPort          = "8080"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultUpstreamTimeout   = 5 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultPGMaxConns        = 5
	DefaultPGMinConns        = 1
	DefaultPGMaxConnIdle     = 2 * time.Minute
)
