// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package review

import (
	"context"

	"github.com/Vingoooo/expert-scoring-system/models"
)

// Store persists projects and final votes. Drafts never reach the store.
//
// Every mutating method must be all-or-nothing: on error the backing data is
// left as it was.
type Store interface {
	LoadProjects(ctx context.Context) ([]models.Project, error)
	LoadFinalVotes(ctx context.Context) ([]models.VoteRecord, error)

	// InsertProject returns ErrDuplicateProject if the name is taken.
	InsertProject(ctx context.Context, p models.Project) error
	// DeleteProject removes the project and every final vote referencing it.
	DeleteProject(ctx context.Context, name string) error
	ClearFinalVotes(ctx context.Context, project string) error
	// ReplaceFinalVotes drops all final votes of expert and inserts votes.
	ReplaceFinalVotes(ctx context.Context, expert string, votes []models.VoteRecord) error
}
