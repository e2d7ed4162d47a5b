package cli

// Default values for CLI flags and configurations.
const (
	// MaxSearchDescriptionLength is the maximum length of a package description in search results.
	MaxSearchDescriptionLength = 40
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// SeparatorWidth is the width of the rule under table headers.
	SeparatorWidth = 60
)
