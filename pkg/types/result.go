package types

// FailureReason classifies a per-item creation failure. Per-item failures
// never abort a phase; they surface in the summary and reduce reachability
// of dependent items through the absent remote id.
type FailureReason string

const (
	// ReasonParentNotResolved marks a folder whose parent has no remote id.
	ReasonParentNotResolved FailureReason = "parent_not_resolved"
	// ReasonFolderNotResolved marks a page whose folder has no remote id.
	ReasonFolderNotResolved FailureReason = "folder_not_resolved"
	// ReasonRemoteCreateFailed marks a failed remote creation call,
	// timeouts included.
	ReasonRemoteCreateFailed FailureReason = "remote_create_failed"
	// ReasonStoreWriteFailed marks an item whose remote creation succeeded
	// but whose mapping could not be durably recorded.
	ReasonStoreWriteFailed FailureReason = "store_write_failed"
)

// ItemFailure records one failed item with its reason and detail.
type ItemFailure struct {
	Path   string        `json:"path"`
	Reason FailureReason `json:"reason"`
	Detail string        `json:"detail,omitempty"`
}

// PhaseResult aggregates one creation phase. CreatedIDs holds the remote
// identifiers produced, in completion order.
type PhaseResult struct {
	Total      int           `json:"total"`
	Created    int           `json:"created"`
	Skipped    int           `json:"skipped"`
	DryRun     bool          `json:"dry_run"`
	CreatedIDs []string      `json:"created_ids,omitempty"`
	Failures   []ItemFailure `json:"failures,omitempty"`
}

// Failed returns the number of failed items in the phase.
func (r *PhaseResult) Failed() int { return len(r.Failures) }

// Summary aggregates the folder and page phases of one run. A phase that
// did not run is nil.
type Summary struct {
	Folders *PhaseResult `json:"folders,omitempty"`
	Pages   *PhaseResult `json:"pages,omitempty"`
	DryRun  bool         `json:"dry_run"`
}

// Created returns the total created count across both phases.
func (s *Summary) Created() int {
	return phaseCount(s.Folders, func(r *PhaseResult) int { return r.Created }) +
		phaseCount(s.Pages, func(r *PhaseResult) int { return r.Created })
}

// Skipped returns the total skipped count across both phases.
func (s *Summary) Skipped() int {
	return phaseCount(s.Folders, func(r *PhaseResult) int { return r.Skipped }) +
		phaseCount(s.Pages, func(r *PhaseResult) int { return r.Skipped })
}

// Failed returns the total failed count across both phases.
func (s *Summary) Failed() int {
	return phaseCount(s.Folders, func(r *PhaseResult) int { return r.Failed() }) +
		phaseCount(s.Pages, func(r *PhaseResult) int { return r.Failed() })
}

// Failures returns all per-item failures, folders first.
func (s *Summary) Failures() []ItemFailure {
	var out []ItemFailure
	if s.Folders != nil {
		out = append(out, s.Folders.Failures...)
	}
	if s.Pages != nil {
		out = append(out, s.Pages.Failures...)
	}
	return out
}

func phaseCount(r *PhaseResult, f func(*PhaseResult) int) int {
	if r == nil {
		return 0
	}
	return f(r)
}

// VerifyReport reconciles a fresh plan against the store. Missing entries
// exist in the tree but not in the store; stale entries exist in the store
// but no longer in the tree.
type VerifyReport struct {
	MissingFolders []string `json:"missing_folders,omitempty"`
	MissingPages   []string `json:"missing_pages,omitempty"`
	StaleFolders   []string `json:"stale_folders,omitempty"`
	StalePages     []string `json:"stale_pages,omitempty"`
}

// Clean reports whether the store exactly matches the plan.
func (v *VerifyReport) Clean() bool {
	return len(v.MissingFolders) == 0 && len(v.MissingPages) == 0 &&
		len(v.StaleFolders) == 0 && len(v.StalePages) == 0
}
