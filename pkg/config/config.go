package config

// Config holds all runtime configuration
type Config struct {
	// Instance settings
	Instance string
	Port     int
	User     string
	Password string
	Encrypt  bool

	// Output settings
	OutputFile string
	ErrorFile  string

	// Operational flags
	Verbose bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Port:       1433,
		Encrypt:    false,
		OutputFile: "./Check-SqlInstanceResults.txt",
		ErrorFile:  "./Check-SqlInstanceErrors.txt",
		Verbose:    false,
	}
}
