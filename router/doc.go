// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the expert scoring API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, sessions, m)

# Endpoints

Health and metrics:

	GET /health
	GET /health/details
	GET /metrics

Public:

	POST /login              - Log in as admin or expert
	POST /logout             - Drop the bearer token
	GET  /rubrics/{stage}    - Criteria for interim or final
	GET  /projects           - Registered projects

Admin (requires an admin bearer token):

	POST   /admin/projects              - Register project
	DELETE /admin/projects/{name}       - Delete project and its votes
	DELETE /admin/projects/{name}/votes - Clear final votes
	GET    /admin/votes                 - Final votes with age
	GET    /admin/votes.csv             - Final votes as CSV
	GET    /admin/summary               - Per-project means

Expert (requires an expert bearer token):

	GET  /expert/session               - Projects, effective votes, locks
	PUT  /expert/projects/{name}/draft - Save draft scores
	POST /expert/submit                - Submit final scores

Metrics and CORS are applied around the mux in main.
*/
package router
