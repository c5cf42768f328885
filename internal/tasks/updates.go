package tasks

import "fmt"

// ProgressUpdate represents a progress event during a multi-fetch operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchSections Phase = iota
	Done
)

func (p Phase) String() string {
	switch p {
	case FetchSections:
		return "fetch_sections"
	case Done:
		return "done"
	default:
		return ""
	}
}

// Section identifies one landing view section.
type Section string

const (
	TrendingSection Section = "trending"
	PopularSection  Section = "popular"
	TopRatedSection Section = "top rated"
)

func fetchSectionUpdate(step, total int, section Section) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSections,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %s movies...", section),
	}
}

func doneUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    total,
		Total:   total,
		Message: "All sections loaded",
	}
}

// sendProgress delivers an update without blocking; a slow or absent
// consumer never stalls the fetch.
func sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}

	select {
	case prog <- update:
	default:
	}
}
