package cmd

// ReaperConfig holds the command line settings for a sweep.
type ReaperConfig struct {
	Debug  bool
	DryRun bool

	// Region is the home region used to enumerate the other regions.
	// Empty means whatever the AWS shared config resolves.
	Region string
}

// NewReaperConfig returns a ReaperConfig with every option off and the
// region left to the AWS shared config.
func NewReaperConfig() *ReaperConfig {
	return &ReaperConfig{
		Debug:  false,
		DryRun: false,
		Region: "",
	}
}
