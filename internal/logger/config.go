// internal/logger/config.go
package logger

type Config struct {
	LogFile     string // empty logs to the console only
	MaxSize     int    // megabytes
	MaxAge      int    // days
	MaxBackups  int    // rotated files kept
	Compress    bool   // gzip rotated files
	Development bool
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		LogFile:     "solana-client.log",
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: false,
	}
}
