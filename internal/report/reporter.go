package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	delimiter  = "----------------------------------------"
)

// Render formats the batch's failures as report text: a header with the
// generation timestamp and failure count, then one numbered block per
// FailureRecord in processing order, separated by a delimiter line.
func Render(result *model.BatchResult) string {
	failures := result.Failures()

	var sb strings.Builder
	sb.WriteString("Failed downloads report\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", time.Now().Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("Total failed: %d\n", len(failures)))
	sb.WriteString(delimiter + "\n\n")

	for i, failure := range failures {
		sb.WriteString(fmt.Sprintf("%d. URL: %s\n", i+1, failure.URL))
		sb.WriteString(fmt.Sprintf("   Destination: %s\n", failure.Destination))
		sb.WriteString(fmt.Sprintf("   Error: %s\n", failure.Message))
		sb.WriteString(fmt.Sprintf("   Time: %s\n", failure.Timestamp.Format(timeLayout)))
		sb.WriteString(delimiter + "\n")
	}

	return sb.String()
}

// WriteIfFailed writes the rendered report to path when the batch had at
// least one failure, overwriting any previous report. With zero failures
// nothing is written and any prior report is left as is. Returns whether
// a report was written.
func WriteIfFailed(result *model.BatchResult, path string) (bool, error) {
	if result.Failed() == 0 {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(Render(result)), 0644); err != nil {
		return false, err
	}
	return true, nil
}
