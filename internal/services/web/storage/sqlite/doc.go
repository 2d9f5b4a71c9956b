// Package sqlite provides the web persistence adapter backed by SQLite.
//
// Registration drafts, participants and the email outbox share one database
// file; schema changes ship as embedded migrations.
package sqlite
