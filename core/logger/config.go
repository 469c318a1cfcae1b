package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding (json, console).
	Format string `mapstructure:"format" default:"json"`
	// Output is where log lines go: stderr, stdout or a file path.
	// The CLI prints its tables on stdout, so stderr keeps them apart.
	Output string `mapstructure:"output" default:"stderr"`
}
