package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Constants for progress bar configuration
const (
	progressBarWidth    = 40
	progressBarThrottle = 65 * 1000000
)

// NewFileBar creates a bar counting processed files out of total.
func NewFileBar(description string, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionThrottle(progressBarThrottle),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowIts(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
