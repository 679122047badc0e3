// Package inkwire is the embeddable reconciler: it connects a frame source
// (a renderer producing grayscale captures and dirty-region reports) to a
// panel (an e-paper controller accepting packed 4bpp windows), and runs the
// refresh-mode decision engine between them.
//
// Use New to create an instance, then Start to begin reconciling:
//
//	src, _ := testpattern.New(800, 600, time.Second, logger)
//	panel := mock.NewPanel("frames", 800, 600, logger)
//	w, err := inkwire.New(inkwire.Config{}, src, panel,
//		inkwire.WithLogger(logger),
//	)
//	if err != nil { ... }
//	if err := w.Start(ctx); err != nil { ... }
//	defer w.Stop()
//
// The instance owns the engine goroutine; TriggerRefresh and Status are safe
// to call from any goroutine.
package inkwire
