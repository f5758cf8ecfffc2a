package server

import "time"

// Sync payloads are small flat JSON documents, so short request timeouts
// are safe; idle keeps scoreboard clients' keep-alive connections around.
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 90 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
