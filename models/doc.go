// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: role, password, name
  - CreateProjectRequest: name, applicant, stage, duration_minutes
  - SaveDraftRequest: scores (map[string]RawScore)

RawScore accepts either "18" or 18 so that the validator sees exactly what
was typed, including empty strings.

# Response Types

Types for JSON responses:

  - LoginResponse: token, role, expert
  - SessionResponse: expert, final_submitted, per-project lock state
  - SubmitResponse: submitted records, message
  - VoteListing: a final vote plus a humanized age
  - HealthDetails: counts and load warnings
  - ErrorResponse: error, message, details

# Domain Types

  - Project: a project under review
  - Scores: criterion key to integer score
  - VoteRecord: one expert's scores for one project (draft or final)
  - ProjectSummary: per-project means over final votes

# Constants

Roles:

	RoleAdmin  = "admin"
	RoleExpert = "expert"
*/
package models
