package config

// SyncConfig holds the default inputs of a journal sync run.
// Command-line flags and HTTP requests override them per run.
type SyncConfig struct {
	// DryRun simulates all writes.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// Medline is a comma-separated list of Medline file locators.
	Medline string `mapstructure:"medline" default:""`
	// PMC is a comma-separated list of NIH PMC type A CSV locators.
	PMC string `mapstructure:"pmc" default:""`
	// BaseDir is the only directory HTTP requests may read local files from.
	// Empty means HTTP requests accept s3:// locators only.
	BaseDir string `mapstructure:"base_dir" default:""`
}

// MedlineLocators returns the configured Medline locators.
func (c SyncConfig) MedlineLocators() []string {
	return splitList(c.Medline)
}

// PMCLocators returns the configured PMC locators.
func (c SyncConfig) PMCLocators() []string {
	return splitList(c.PMC)
}
