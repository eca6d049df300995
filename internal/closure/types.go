package closure

// Severity classifies how strongly a blocker opposes closure. Only
// SeverityBlocking vetoes it; warning and info entries are advisory.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// BlockerType is a coarse classification of what kind of obligation blocks
// closure.
type BlockerType string

const (
	BlockerTypeFinancial BlockerType = "financial"
	BlockerTypeData      BlockerType = "data"
)

// Blocker is a reason closure cannot (or should not) proceed yet. It is a
// derived value recomputed on every check pass, attributable to exactly one
// module and one underlying entity, and never persisted.
type Blocker struct {
	ModuleID       string      `json:"moduleId"`
	Type           BlockerType `json:"type"`
	Severity       Severity    `json:"severity"`
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	ActionRequired string      `json:"actionRequired,omitempty"`
	ActionURL      string      `json:"actionUrl,omitempty"`
}

// IsBlocking reports whether this blocker vetoes closure.
func (b Blocker) IsBlocking() bool { return b.Severity == SeverityBlocking }

// ArchivableData describes one unit of data a module offers to snapshot
// before deletion. Purely descriptive: the archival side effect happens in
// Checker.Archive, not here.
type ArchivableData struct {
	ModuleID   string         `json:"moduleId"`
	ModuleName string         `json:"moduleName"`
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	SizeBytes  int64          `json:"sizeBytes,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// CheckResult is the per-module output of a check pass. Produced fresh per
// call and never mutated after return.
type CheckResult struct {
	ModuleID       string           `json:"moduleId"`
	ModuleName     string           `json:"moduleName"`
	Blockers       []Blocker        `json:"blockers"`
	ArchivableData []ArchivableData `json:"archivableData"`
}

// EmptyResult is the fallback substituted for a module whose check failed:
// no information from this module, but the pass continues.
func EmptyResult(moduleID, moduleName string) CheckResult {
	return CheckResult{
		ModuleID:       moduleID,
		ModuleName:     moduleName,
		Blockers:       []Blocker{},
		ArchivableData: []ArchivableData{},
	}
}

// HasBlocking reports whether any result carries a blocker with severity
// "blocking". This is the closure decision rule: canClose == !HasBlocking.
func HasBlocking(results []CheckResult) bool {
	for _, r := range results {
		for _, b := range r.Blockers {
			if b.IsBlocking() {
				return true
			}
		}
	}
	return false
}

// SplitBlockers partitions all blockers across results into blocking and
// advisory (warning/info) groups, preserving module order.
func SplitBlockers(results []CheckResult) (blocking, advisory []Blocker) {
	blocking = []Blocker{}
	advisory = []Blocker{}
	for _, r := range results {
		for _, b := range r.Blockers {
			if b.IsBlocking() {
				blocking = append(blocking, b)
			} else {
				advisory = append(advisory, b)
			}
		}
	}
	return blocking, advisory
}

// CollectArchivable flattens archivable data across results, preserving
// module order.
func CollectArchivable(results []CheckResult) []ArchivableData {
	out := []ArchivableData{}
	for _, r := range results {
		out = append(out, r.ArchivableData...)
	}
	return out
}

// Impact summarizes what closing the organization will delete. Counts are
// computed by the orchestration service from the domain stores, not by the
// checkers.
type Impact struct {
	Projects  int `json:"projects"`
	Tasks     int `json:"tasks"`
	Members   int `json:"members"`
	Invites   int `json:"invites"`
	Documents int `json:"documents"`
	Expenses  int `json:"expenses"`
}
