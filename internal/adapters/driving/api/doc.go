// Package api serves the matching engine over HTTP.
//
// Routes:
//
//	POST /v1/matches        rank animals for a set of preference answers
//	GET  /v1/animals/{id}   fetch one catalog record
//	GET  /v1/questions      the adopter questionnaire
//	GET  /healthz           liveness
//	GET  /readyz            readiness, 503 until the first index build
//	GET  /metrics           Prometheus metrics
//
// Errors are returned as {"error": {"code": ..., "message": ...}}. An
// engine that has not finished building answers 503 "system not ready".
package api
