package main

import (
	"testing"
)

// main must honor SKIP_SERVER_RUN so test runs never bind a port.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}
