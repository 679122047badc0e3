// Package domain contains the core domain entities and value objects for inkwire.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (SPI, rendering, logging) and
// contains only pure data types and the geometry rules of the panel.
//
// Rectangles and rasters are represented with the standard library's
// image.Rectangle and image.Gray; this package adds the panel-specific
// rules on top of them.
//
// # Entities
//
//   - [RefreshMode]: The controller update mode used for a dispatch
//   - [Mutation] / [MutationBatch]: Dirty-region reports from the renderer
//   - [VisibilityCounts]: Depth preferences of the visible regions
//   - [MergeRegions] / [AlignQuantum]: Window merging and alignment rules
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
