// Package model defines shared data structures.
package model

// Config defines terminal practice settings.
type Config struct {
	SentencesPath string
	Seed          int64
}

// ServeConfig defines settings for the browser server.
type ServeConfig struct {
	Addr          string
	LogLevel      string
	Metrics       bool
	SentencesPath string
	Seed          int64
}
