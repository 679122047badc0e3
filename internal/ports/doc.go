// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the reconciliation core and the outside
// world. They define what the core needs from its collaborators without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [FrameSource]: Captures grayscale rasters and reports content mutations
//   - [Panel]: Writes packed rasters to the physical display controller
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (SPI hardware, PNG dumps, zerolog, test fakes).
package ports
