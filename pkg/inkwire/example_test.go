package inkwire_test

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwire/inkwire/pkg/inkwire"
)

// ExampleNew demonstrates how to embed inkwire in your application. The
// source and panel here are test stubs; real deployments wire a renderer
// bridge and an SPI panel (or the PNG-dumping mock).
func ExampleNew() {
	cfg := inkwire.Config{
		FullRefreshInterval: 60 * time.Second,
		CoalesceDelay:       time.Second,
	}

	w, err := inkwire.New(cfg, newStubSource(), &stubPanel{})
	if err != nil {
		fmt.Printf("failed to create inkwire: %v\n", err)
		return
	}

	// Start reconciling (non-blocking).
	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}

	// Check status (may be Starting or Running depending on timing)
	status := w.Status()
	fmt.Printf("Status is valid: %v\n", status == inkwire.StateStarting || status == inkwire.StateRunning)

	// Force a ghost-clearing refresh at any time.
	w.TriggerRefresh(true)

	// Stop gracefully (waits for the in-flight refresh).
	_ = w.Stop()

	// Output: Status is valid: true
}
