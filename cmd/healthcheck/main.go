// Container healthcheck probe. Hits the liveness endpoint and exits
// non-zero on any failure so the orchestrator restarts the container.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	if err := probe(); err != nil {
		os.Exit(1)
	}
}

func probe() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "10000"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://localhost:" + port + "/healthz")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthz returned %d", resp.StatusCode)
	}
	return nil
}
