package cli

import "os"

// Config holds CLI configuration
type Config struct {
	// ServerURL is the base HTTP URL of the server
	ServerURL string
	// JSONOutput switches event printing to JSON lines
	JSONOutput bool
}

// DefaultConfig returns CLI defaults, honoring environment overrides
func DefaultConfig() *Config {
	serverURL := os.Getenv("HOLDEM_SERVER")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	return &Config{
		ServerURL: serverURL,
	}
}
