// Package storage declares the persistence contract the web service needs
// for registration drafts, submitted participants and organizer actions.
package storage
