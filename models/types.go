package models

import (
	"time"

	"github.com/Vingoooo/expert-scoring-system/rubric"
)

// Role constants
const (
	RoleAdmin  = "admin"
	RoleExpert = "expert"
)

// DefaultDurationMinutes is used when a project is registered without a
// planned presentation length.
const DefaultDurationMinutes = 30

// CSVTimeLayout is the timestamp layout of exported vote sheets
const CSVTimeLayout = "2006-01-02 15:04"

// Request types

type LoginRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type CreateProjectRequest struct {
	Name            string `json:"name"`
	Applicant       string `json:"applicant"`
	Stage           string `json:"stage"`
	DurationMinutes int    `json:"duration_minutes"`
}

// criterion key -> raw input, e.g. {"research": "18", "budget": ""}
type SaveDraftRequest struct {
	Scores map[string]RawScore `json:"scores"`
}

// Response types

type LoginResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	Expert string `json:"expert,omitempty"`
}

type SessionResponse struct {
	Expert         string                `json:"expert"`
	FinalSubmitted bool                  `json:"final_submitted"`
	Projects       []ProjectVoteStatus   `json:"projects"`
	Effective      map[string]VoteRecord `json:"effective"`
}

// ProjectVoteStatus describes a project from one expert's point of view
type ProjectVoteStatus struct {
	Project Project `json:"project"`
	HasVote bool    `json:"has_vote"`
	IsDraft bool    `json:"is_draft"`
	Locked  bool    `json:"locked"`
}

type SubmitResponse struct {
	Submitted []VoteRecord `json:"submitted"`
	Message   string       `json:"message"`
}

type VoteListing struct {
	VoteRecord
	SubmittedAgo string `json:"submitted_ago"`
}

type HealthDetails struct {
	Status   string   `json:"status"`
	Projects int      `json:"projects"`
	Votes    int      `json:"votes"`
	Warnings []string `json:"warnings,omitempty"`
}

// Domain types

type Project struct {
	Name            string       `json:"name"`
	Applicant       string       `json:"applicant"`
	Stage           rubric.Stage `json:"stage"`
	DurationMinutes int          `json:"duration_minutes"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Scores maps criterion key to an integer score
type Scores map[string]int

// Total sums every criterion score
func (s Scores) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Clone returns an independent copy
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

type VoteRecord struct {
	ID          string       `json:"id"`
	ProjectName string       `json:"project_name"`
	Stage       rubric.Stage `json:"stage"`
	ExpertName  string       `json:"expert"`
	Scores      Scores       `json:"scores"`
	Total       int          `json:"total"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Clone returns a copy that shares no maps with v
func (v VoteRecord) Clone() VoteRecord {
	v.Scores = v.Scores.Clone()
	return v
}

// Aggregation types

type ProjectSummary struct {
	ProjectName      string             `json:"project_name"`
	Stage            rubric.Stage       `json:"stage"`
	VoteCount        int                `json:"vote_count"`
	MeanTotal        float64            `json:"mean_total"`
	MeanPerCriterion map[string]float64 `json:"mean_per_criterion"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}
