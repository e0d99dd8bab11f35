// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package review

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/rubric"
)

// Service owns the project registry, the vote ledger and the per-expert
// session state. All state lives in memory and is written through to the
// Store before any in-memory change is made.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string

	mu        sync.RWMutex
	projects  []models.Project
	finals    map[string]map[string]models.VoteRecord // expert -> project -> record
	drafts    map[string]map[string]models.VoteRecord // expert -> project -> record
	submitted map[string]bool
	warnings  []string
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the vote record ID source
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithStartupWarning records a problem met before the service was loaded,
// such as a database that could not be opened.
func WithStartupWarning(msg string, err error) Option {
	return func(s *Service) {
		s.warn(msg, err)
	}
}

// Load reads projects and final votes from the store. A store that cannot
// be read does not stop the service: it starts empty and the failure is
// kept in Warnings.
func Load(ctx context.Context, store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		now:       time.Now,
		newID:     uuid.NewString,
		finals:    make(map[string]map[string]models.VoteRecord),
		drafts:    make(map[string]map[string]models.VoteRecord),
		submitted: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	projects, err := store.LoadProjects(ctx)
	if err != nil {
		s.warn("failed to load projects, starting empty", err)
		projects = nil
	}
	s.projects = projects

	votes, err := store.LoadFinalVotes(ctx)
	if err != nil {
		s.warn("failed to load final votes, starting empty", err)
		votes = nil
	}

	known := make(map[string]bool, len(s.projects))
	for _, p := range s.projects {
		known[p.Name] = true
	}
	dropped := 0
	for _, v := range votes {
		if !known[v.ProjectName] {
			dropped++
			continue
		}
		s.putFinal(v)
	}
	if dropped > 0 {
		s.warn("ignored final votes for unknown projects", fmt.Errorf("%d records", dropped))
	}

	slog.Info("review state loaded", "projects", len(s.projects), "final_votes", len(votes)-dropped)
	return s
}

func (s *Service) warn(msg string, err error) {
	slog.Warn(msg, "error", err)
	s.warnings = append(s.warnings, msg+": "+err.Error())
}

// Warnings returns problems met while loading persisted state
func (s *Service) Warnings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.warnings...)
}

func (s *Service) putFinal(v models.VoteRecord) {
	m, ok := s.finals[v.ExpertName]
	if !ok {
		m = make(map[string]models.VoteRecord)
		s.finals[v.ExpertName] = m
	}
	m[v.ProjectName] = v
}

// resetSubmitted reopens every expert after the project set or its votes changed.
func (s *Service) resetSubmitted() {
	for name := range s.submitted {
		s.submitted[name] = false
	}
}

func (s *Service) findProject(name string) (int, bool) {
	for i, p := range s.projects {
		if p.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Project registry

// AddProject registers a new project. Names are matched case-sensitively.
func (s *Service) AddProject(ctx context.Context, name, applicant string, stage rubric.Stage, durationMinutes int) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if !stage.Valid() {
		return models.Project{}, fmt.Errorf("%w: %q", ErrUnknownStage, string(stage))
	}
	if durationMinutes <= 0 {
		durationMinutes = models.DefaultDurationMinutes
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findProject(name); exists {
		return models.Project{}, fmt.Errorf("%w: %q", ErrDuplicateProject, name)
	}

	p := models.Project{
		Name:            name,
		Applicant:       strings.TrimSpace(applicant),
		Stage:           stage,
		DurationMinutes: durationMinutes,
		CreatedAt:       s.now(),
	}
	if err := s.store.InsertProject(ctx, p); err != nil {
		return models.Project{}, err
	}

	s.projects = append(s.projects, p)
	s.resetSubmitted()

	slog.Info("project added", "project", p.Name, "stage", p.Stage)
	return p, nil
}

// DeleteProject removes a project together with every draft and final vote for it.
func (s *Service) DeleteProject(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.findProject(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	if err := s.store.DeleteProject(ctx, name); err != nil {
		return err
	}

	s.projects = append(s.projects[:idx:idx], s.projects[idx+1:]...)
	for _, m := range s.finals {
		delete(m, name)
	}
	for _, m := range s.drafts {
		delete(m, name)
	}
	s.resetSubmitted()

	slog.Info("project deleted", "project", name)
	return nil
}

// ClearVotes drops the final votes of a project and keeps the project.
// Drafts are untouched.
func (s *Service) ClearVotes(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findProject(name); !ok {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	if err := s.store.ClearFinalVotes(ctx, name); err != nil {
		return err
	}

	for _, m := range s.finals {
		delete(m, name)
	}
	s.resetSubmitted()

	slog.Info("project votes cleared", "project", name)
	return nil
}

// ListProjects returns projects in registration order
func (s *Service) ListProjects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project(nil), s.projects...)
}

// Project looks up a single project
func (s *Service) Project(name string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.findProject(name)
	if !ok {
		return models.Project{}, false
	}
	return s.projects[idx], true
}

// Vote ledger

// SaveDraft validates raw form input and stores it as the expert's draft for
// the project, replacing any earlier draft. Final votes are not touched.
func (s *Service) SaveDraft(expert, projectName string, raw map[string]string) (models.VoteRecord, error) {
	expert = strings.TrimSpace(expert)
	if expert == "" {
		return models.VoteRecord{}, ErrInvalidExpert
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.findProject(projectName)
	if !ok {
		return models.VoteRecord{}, fmt.Errorf("%w: %q", ErrProjectNotFound, projectName)
	}
	project := s.projects[idx]

	if Locked(s.drafts[expert], s.finals[expert], project.Name) {
		return models.VoteRecord{}, fmt.Errorf("%w: %q", ErrProjectLocked, project.Name)
	}

	criteria, err := rubric.Criteria(project.Stage)
	if err != nil {
		return models.VoteRecord{}, err
	}
	scores, err := Validate(raw, criteria)
	if err != nil {
		return models.VoteRecord{}, err
	}

	drafts, ok := s.drafts[expert]
	if !ok {
		drafts = make(map[string]models.VoteRecord)
		s.drafts[expert] = drafts
	}

	id := s.newID()
	if prev, ok := drafts[project.Name]; ok {
		id = prev.ID
	}
	record := models.VoteRecord{
		ID:          id,
		ProjectName: project.Name,
		Stage:       project.Stage,
		ExpertName:  expert,
		Scores:      scores,
		Total:       scores.Total(),
		Timestamp:   s.now(),
	}
	drafts[project.Name] = record

	slog.Debug("draft saved", "expert", expert, "project", project.Name, "total", record.Total)
	return record.Clone(), nil
}

// EffectiveVotes returns the expert's drafts layered over their final votes
func (s *Service) EffectiveVotes(expert string) map[string]models.VoteRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Merge(s.drafts[expert], s.finals[expert])
}

// IsProjectLocked reports whether the expert's scores for a project are read-only
func (s *Service) IsProjectLocked(expert, project string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Locked(s.drafts[expert], s.finals[expert], project)
}

// SubmitFinal promotes the expert's effective votes to final votes.
//
// It fails with ErrIncompleteSubmission unless every registered project has
// an effective vote. On success the expert's previous final votes are
// replaced, drafts are cleared and the expert is marked as submitted.
// Submitting again re-finalizes the same effective set with a new timestamp.
func (s *Service) SubmitFinal(ctx context.Context, expert string) ([]models.VoteRecord, error) {
	expert = strings.TrimSpace(expert)
	if expert == "" {
		return nil, ErrInvalidExpert
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	effective := Merge(s.drafts[expert], s.finals[expert])
	var missing []string
	for _, p := range s.projects {
		if _, ok := effective[p.Name]; !ok {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteSubmissionError{Missing: missing}
	}

	ts := s.now()
	records := make([]models.VoteRecord, 0, len(s.projects))
	for _, p := range s.projects {
		v := effective[p.Name]
		v.ID = s.newID()
		v.Stage = p.Stage
		v.ExpertName = expert
		v.Total = v.Scores.Total()
		v.Timestamp = ts
		records = append(records, v)
	}

	if err := s.store.ReplaceFinalVotes(ctx, expert, records); err != nil {
		return nil, err
	}

	finals := make(map[string]models.VoteRecord, len(records))
	for _, v := range records {
		finals[v.ProjectName] = v
	}
	s.finals[expert] = finals
	delete(s.drafts, expert)
	s.submitted[expert] = true

	slog.Info("final scores submitted", "expert", expert, "projects", len(records))

	out := make([]models.VoteRecord, len(records))
	for i, v := range records {
		out[i] = v.Clone()
	}
	return out, nil
}

// FinalVotes returns every final vote, ordered by project then expert
func (s *Service) FinalVotes() []models.VoteRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	experts := make([]string, 0, len(s.finals))
	for name := range s.finals {
		experts = append(experts, name)
	}
	sort.Strings(experts)

	var out []models.VoteRecord
	for _, p := range s.projects {
		for _, e := range experts {
			if v, ok := s.finals[e][p.Name]; ok {
				out = append(out, v.Clone())
			}
		}
	}
	return out
}

// Expert sessions

// OpenSession registers an expert at login. An existing session keeps its
// submitted flag.
func (s *Service) OpenSession(expert string) (models.SessionResponse, error) {
	expert = strings.TrimSpace(expert)
	if expert == "" {
		return models.SessionResponse{}, ErrInvalidExpert
	}

	s.mu.Lock()
	if _, ok := s.submitted[expert]; !ok {
		s.submitted[expert] = false
	}
	s.mu.Unlock()

	return s.Session(expert), nil
}

// Session describes every registered project from the expert's point of view
func (s *Service) Session(expert string) models.SessionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	drafts := s.drafts[expert]
	finals := s.finals[expert]
	effective := Merge(drafts, finals)

	statuses := make([]models.ProjectVoteStatus, 0, len(s.projects))
	for _, p := range s.projects {
		_, hasVote := effective[p.Name]
		_, isDraft := drafts[p.Name]
		statuses = append(statuses, models.ProjectVoteStatus{
			Project: p,
			HasVote: hasVote,
			IsDraft: isDraft,
			Locked:  Locked(drafts, finals, p.Name),
		})
	}

	return models.SessionResponse{
		Expert:         expert,
		FinalSubmitted: s.submitted[expert],
		Projects:       statuses,
		Effective:      effective,
	}
}

// Submitted reports whether the expert has completed a final submission
// since the last administrative change.
func (s *Service) Submitted(expert string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitted[expert]
}
