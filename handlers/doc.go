// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the expert scoring API.

# Handler Types

Each handler is a struct wrapping the review service:

  - AuthHandler: Login and logout
  - ProjectHandler: Project registry and rubric lookup
  - ScoringHandler: Expert sessions, drafts and final submission
  - ReportHandler: Vote listings, CSV export, summaries and health details

Handlers are created via constructor functions:

	projectHandler := handlers.NewProjectHandler(svc, m)

Role checks are done by middleware.RequireRole before a handler runs;
handlers read the caller with middleware.PrincipalFrom.

# Scoring Flow

	POST /login                          → Login (role expert, with a name)
	GET  /expert/session                 → GetSession
	PUT  /expert/projects/{name}/draft   → SaveDraft (repeatable)
	POST /expert/submit                  → Submit (every project scored)

Drafts may be saved any number of times. A project with a final vote and
no draft is locked; SaveDraft then returns 409 until an administrator
clears that project's votes.

# Error Mapping

Service errors become status codes in one place (errors.go):

  - invalid scores, incomplete submission: 422 with a details list
  - duplicate project, locked project, second submission: 409
  - unknown project: 404
  - bad project fields, unknown stage, missing expert name: 400
*/
package handlers
