package podlist

import "fmt"

// Fixed user-facing status strings.
const (
	StatusLoading     = "Loading the podcast list from the server..."
	StatusUnreachable = "Cannot reach the podcast server. Make sure the API service is running."
	StatusLockHeld    = "Another podcutter instance is processing a file. Try again when it finishes."
)

func analyzingStatus(filename string) string {
	return fmt.Sprintf("Analyzing %s for ads. This can take several minutes...", filename)
}

func analyzedStatus(filename string) string {
	return fmt.Sprintf("Analysis of %s complete.", filename)
}

func analyzeFailedStatus(filename string) string {
	return fmt.Sprintf("Analysis of %s failed. Check the server log for details.", filename)
}

func splicingStatus(filename string) string {
	return fmt.Sprintf("Removing ads from %s...", filename)
}

func splicedStatus(filename, output string) string {
	return fmt.Sprintf("Ads removed from %s. Saved as %s.", filename, output)
}

func spliceFailedStatus(filename string) string {
	return fmt.Sprintf("Removing ads from %s failed. Has it been analyzed yet?", filename)
}
