package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/projscout/internal/locator"
	"github.com/blackwell-systems/projscout/internal/pathutil"
)

// maxItemAlerts bounds how many per-project alerts one change produces
// before they collapse into a single summary alert.
const maxItemAlerts = 3

// Compare detects notable changes between two watch states and returns
// alerts: warnings for vanished projects and failing scans, info for new
// projects and recovered scans.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

// compareWarning detects warning-level changes.
func compareWarning(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// A scan started failing.
	for kind, msg := range curr.Errors {
		if msg == "" {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   fmt.Sprintf("Scan failed: %s", kind),
			Message: msg,
			Time:    now,
		})
	}

	// Projects vanished. A kind whose current scan failed is skipped: its
	// list may be truncated, and reporting everything below the failure
	// point as removed would be noise.
	for kind, prevList := range prev.Projects {
		if curr.Errors[kind] != "" {
			continue
		}
		gone := diffProjects(prevList, curr.Projects[kind])
		if len(gone) == 0 {
			continue
		}
		if len(gone) > maxItemAlerts {
			alerts = append(alerts, Alert{
				Level:   "warning",
				Title:   fmt.Sprintf("%d %s projects removed", len(gone), kind),
				Message: joinNames(gone),
				Time:    now,
			})
			continue
		}
		for _, p := range gone {
			alerts = append(alerts, Alert{
				Level:   "warning",
				Title:   fmt.Sprintf("Project removed: %s", p.Name),
				Message: fmt.Sprintf("%s no longer matches as a %s project", pathutil.Compact(p.FullPath), kind),
				Time:    now,
			})
		}
	}

	return alerts
}

// compareInfo detects informational changes.
func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// New projects appeared.
	for kind, currList := range curr.Projects {
		if curr.Errors[kind] != "" {
			continue
		}
		fresh := diffProjects(prev.Projects[kind], currList)
		if len(fresh) == 0 {
			continue
		}
		if len(fresh) > maxItemAlerts {
			alerts = append(alerts, Alert{
				Level:   "info",
				Title:   fmt.Sprintf("%d new %s projects", len(fresh), kind),
				Message: joinNames(fresh),
				Time:    now,
			})
			continue
		}
		for _, p := range fresh {
			alerts = append(alerts, Alert{
				Level:   "info",
				Title:   fmt.Sprintf("New %s project: %s", kind, p.Name),
				Message: pathutil.Compact(p.FullPath),
				Time:    now,
			})
		}
	}

	// A previously failing scan recovered.
	for kind, msg := range prev.Errors {
		if msg != "" && curr.Errors[kind] == "" {
			alerts = append(alerts, Alert{
				Level:   "info",
				Title:   fmt.Sprintf("Scan recovered: %s", kind),
				Message: fmt.Sprintf("%d projects located", len(curr.Projects[kind])),
				Time:    now,
			})
		}
	}

	return alerts
}

// diffProjects returns the entries of a that are absent from b, matched by
// full path.
func diffProjects(a, b locator.DirList) locator.DirList {
	inB := make(map[string]bool, len(b))
	for _, p := range b {
		inB[p.FullPath] = true
	}

	var missing locator.DirList
	for _, p := range a {
		if !inB[p.FullPath] {
			missing = append(missing, p)
		}
	}
	return missing
}

// joinNames renders a compact comma-separated name list for summary alerts.
func joinNames(list locator.DirList) string {
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
