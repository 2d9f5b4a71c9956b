// Package timeouts defines shared timeout constants used by the web service
// and its command entrypoints.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Submission caps one registration submit effect. A submission that exceeds
// it is cancelled and the draft returns to idle.
const Submission = 10 * time.Second

// StoreQuery caps a single participant store read issued by a page handler.
const StoreQuery = 2 * time.Second
