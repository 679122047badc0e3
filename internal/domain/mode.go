package domain

// RefreshMode identifies the controller update mode used for one dispatch.
//
// The panel supports two quantization depths. The 16-level depth covers the
// full gray range but flashes the panel during the transition; the 4-level
// depth is restricted to four gray codes and updates without a visible flash.
// Full and partial refreshes at the same depth share the packing rule.
type RefreshMode int

const (
	// Full16 is a whole-screen refresh at full gray depth (flashes).
	Full16 RefreshMode = iota

	// Full4 is a whole-screen refresh at 4-level depth (no flash).
	Full4

	// PartialFlash is a single-window refresh at full gray depth.
	PartialFlash

	// PartialNoFlash is a single-window refresh at 4-level depth.
	PartialNoFlash
)

// String returns a human-readable representation of the mode.
func (m RefreshMode) String() string {
	switch m {
	case Full16:
		return "full16"
	case Full4:
		return "full4"
	case PartialFlash:
		return "partial-flash"
	case PartialNoFlash:
		return "partial-noflash"
	default:
		return "unknown"
	}
}

// FourLevel reports whether the mode uses the coerced 4-level quantization.
func (m RefreshMode) FourLevel() bool {
	return m == Full4 || m == PartialNoFlash
}

// Partial reports whether the mode updates a single window rather than the
// whole screen.
func (m RefreshMode) Partial() bool {
	return m == PartialFlash || m == PartialNoFlash
}
