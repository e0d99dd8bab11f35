// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package review

import "github.com/Vingoooo/expert-scoring-system/models"

// Merge builds the effective view of one expert's votes keyed by project
// name. A draft always shadows a final record for the same project.
// Inputs are not modified.
func Merge(drafts, finals map[string]models.VoteRecord) map[string]models.VoteRecord {
	out := make(map[string]models.VoteRecord, len(drafts)+len(finals))
	for name, v := range finals {
		out[name] = v.Clone()
	}
	for name, v := range drafts {
		out[name] = v.Clone()
	}
	return out
}

// Locked reports whether a project is read-only for an expert: a final
// record exists and no draft overrides it.
func Locked(drafts, finals map[string]models.VoteRecord, project string) bool {
	if _, ok := drafts[project]; ok {
		return false
	}
	_, ok := finals[project]
	return ok
}
