package locator

// Notifier receives progress and problem notifications while a Locator
// works. Implementations must be safe for concurrent use; Scanning in
// particular is called from multiple walk goroutines.
type Notifier interface {
	// ScanStarted fires once per walk-based scan, before any directory
	// is visited.
	ScanStarted(kind string)

	// Scanning fires for every directory visited during a walk.
	Scanning(dir string)

	// FolderMissing fires when a configured base folder does not exist.
	// The folder is skipped; the scan continues.
	FolderMissing(dir string)

	// ScanDone fires when a scan completes successfully.
	ScanDone(kind string, found int)

	// ScanFailed fires when a scan aborts with an error. Partial results
	// collected before the failure are retained.
	ScanFailed(kind string, err error)

	// CacheProblem fires when a cache file cannot be read, decoded, or
	// written. The operation continues without the cache.
	CacheProblem(kind string, err error)
}

// NopNotifier discards all notifications. It is the default when a Locator
// is constructed with a nil Notifier.
type NopNotifier struct{}

func (NopNotifier) ScanStarted(string) {}

func (NopNotifier) Scanning(string) {}

func (NopNotifier) FolderMissing(string) {}

func (NopNotifier) ScanDone(string, int) {}

func (NopNotifier) ScanFailed(string, error) {}

func (NopNotifier) CacheProblem(string, error) {}
