// Package http exposes an appender and its log table over HTTP.
//
// # Routes
//
//   - POST /events: write one event (JSON object) or several (JSON array)
//   - GET /events: list rows newest first; category, level, limit and cursor query parameters
//   - GET /stats: appender counters, when the writer is an *appender.Appender
//   - GET /healthz: database ping
//
// Events use the logtable.Record shape:
//
//	{"time": "2024-03-01T12:30:00Z", "level": "warn", "category": "api", "message": "slow request"}
//
// A batch is written in order and stops at the first failed event. Events before it
// stay stored, and the error response carries their count:
//
//	{"error": "internal_error", "message": "Internal server error", "written": 2}
//
// A record may carry "rank" together with "level" to write a custom level, and
// "payload" instead of "message" to hand several values to the layout.
//
// # Usage
//
//	handlerCfg := http.HandlerConfig{
//	    Table:         a.Table(),
//	    WriteVerifier: http.NewTokenVerifier(tokens), // nil for public write
//	}
//	handler := http.NewHandler(&handlerCfg, a, db)
//	http.ListenAndServe(":5709", handler.Router())
//
// # Authentication
//
// AuthMiddleware takes a RequestVerifier, or nil for public access. TokenVerifier
// checks "Authorization: Bearer <token>" against a fixed token list.
//
// Errors are written as JSON ErrorResponse values by WriteError and HandleError.
package http
