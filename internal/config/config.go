package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8090"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""
)
