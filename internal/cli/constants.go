package cli

// Default values for CLI output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// NoSnapshot is printed in place of a missing latest snapshot.
	NoSnapshot = "-"
)
