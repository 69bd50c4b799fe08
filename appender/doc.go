// Package appender writes log events as rows of a relational table.
//
// An Appender is built once from a Config and is then safe for concurrent use.
// Each Write builds a row from the event and inserts it. When the insert fails the
// appender assumes the table is missing, creates it, and retries the insert once:
//
//	insert ── ok ──────────────────────────────▶ nil
//	   │
//	   └─ err1 ─▶ create table ── err2 ────────▶ err1
//	                   │
//	                   └─ ok ─▶ insert again ──▶ nil or err of the retry
//
// The create-table error is never returned; the caller sees why the insert failed.
// A call makes at most two inserts and one create-table attempt.
//
// Write never logs. The appender may itself sit behind the process logger (see the
// sink package), and reporting its own failures through a logger could recurse.
package appender
