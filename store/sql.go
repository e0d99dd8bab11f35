// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
	"github.com/Vingoooo/expert-scoring-system/rubric"
)

// SQL persists projects and final votes through database/sql.
// Queries use $n placeholders, understood by both lib/pq and modernc sqlite.
type SQL struct {
	db *sql.DB
}

var _ review.Store = (*SQL)(nil)

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) LoadProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, applicant, stage, duration_minutes, created_at
		FROM project
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		var stage string
		if err := rows.Scan(&p.Name, &p.Applicant, &stage, &p.DurationMinutes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.Stage = rubric.Stage(stage)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}
	return projects, nil
}

func (s *SQL) LoadFinalVotes(ctx context.Context) ([]models.VoteRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_name, stage, expert,
		       research, tech, deliverables, output, budget, total, submitted_at
		FROM final_vote
		ORDER BY submitted_at, project_name, expert
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query final votes: %w", err)
	}
	defer rows.Close()

	votes := []models.VoteRecord{}
	for rows.Next() {
		var v models.VoteRecord
		var stage string
		var research, tech, deliverables, output, budget int
		if err := rows.Scan(
			&v.ID, &v.ProjectName, &stage, &v.ExpertName,
			&research, &tech, &deliverables, &output, &budget, &v.Total, &v.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan final vote: %w", err)
		}
		v.Stage = rubric.Stage(stage)
		v.Scores = models.Scores{
			rubric.KeyResearch:     research,
			rubric.KeyTech:         tech,
			rubric.KeyDeliverables: deliverables,
			rubric.KeyOutput:       output,
			rubric.KeyBudget:       budget,
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read final votes: %w", err)
	}
	return votes, nil
}

func (s *SQL) InsertProject(ctx context.Context, p models.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM project WHERE name = $1)
	`, p.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %q", review.ErrDuplicateProject, p.Name)
	}

	var seq int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM project`).Scan(&seq); err != nil {
		return fmt.Errorf("failed to compute project order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO project (name, applicant, stage, duration_minutes, seq, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.Name, p.Applicant, string(p.Stage), p.DurationMinutes, seq, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}
	return nil
}

func (s *SQL) DeleteProject(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM final_vote WHERE project_name = $1`, name); err != nil {
		return fmt.Errorf("failed to delete project votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM project WHERE name = $1`, name); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project deletion: %w", err)
	}
	return nil
}

func (s *SQL) ClearFinalVotes(ctx context.Context, project string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM final_vote WHERE project_name = $1`, project)
	if err != nil {
		return fmt.Errorf("failed to clear final votes: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		slog.Debug("final votes cleared", "project", project, "rows", n)
	}
	return nil
}

func (s *SQL) ReplaceFinalVotes(ctx context.Context, expert string, votes []models.VoteRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM final_vote WHERE expert = $1`, expert); err != nil {
		return fmt.Errorf("failed to delete previous final votes: %w", err)
	}

	for _, v := range votes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO final_vote (id, project_name, stage, expert,
			                        research, tech, deliverables, output, budget, total, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, v.ID, v.ProjectName, string(v.Stage), expert,
			v.Scores[rubric.KeyResearch], v.Scores[rubric.KeyTech], v.Scores[rubric.KeyDeliverables],
			v.Scores[rubric.KeyOutput], v.Scores[rubric.KeyBudget], v.Total, v.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert final vote for %q: %w", v.ProjectName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit final votes: %w", err)
	}
	return nil
}
