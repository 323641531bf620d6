package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchFirstPage Phase = iota
	FetchPages
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case FetchFirstPage:
		return "fetch_first_page"
	case FetchPages:
		return "fetch_pages"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchFirstPageUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFirstPage,
		Step:    1,
		Total:   1,
		Message: "Fetching first page...",
	}
}

func foundShowsUpdate(total, pages int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFirstPage,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d shows across %d pages", total, pages),
		Data:    total,
	}
}

func pageFetchedUpdate(step, total, page, shows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ page %d (%d shows)", step, total, page, shows),
	}
}

func pageFailedUpdate(step, total, page int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ page %d: %v", step, total, page, err),
	}
}

func writeExportUpdate(format, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %s export to %s...", format, path),
	}
}
