package app

import (
	"github.com/inkwire/inkwire/internal/codec"
	"github.com/inkwire/inkwire/internal/domain"
)

// ClassifyFull decides the mode for a whole-screen refresh.
//
// The decision is screen-wide and binary: 4-level and 16-level pixels cannot
// coexist within one full-screen pass, so any single dissenting visible
// region forces the conservative full-depth mode for the entire frame.
//
// force16 overrides everything (used to clear accumulated ghosting). With
// defaultFourLevel set, the frame stays at 4 levels unless a visible region
// opts out; without it, the frame reaches 4 levels only when every visible
// region opts in.
func ClassifyFull(defaultFourLevel bool, counts domain.VisibilityCounts, force16 bool) domain.RefreshMode {
	if force16 {
		return domain.Full16
	}
	if defaultFourLevel {
		if counts.NoFourLevel == 0 {
			return domain.Full4
		}
		return domain.Full16
	}
	if counts.Total == counts.FourLevel {
		return domain.Full4
	}
	return domain.Full16
}

// ClassifyPartial decides the mode for a single-window refresh.
//
// A window explicitly marked 4-level always takes the no-flash path.
// Otherwise the captured content is probed: a window with no actual gray
// qualifies for the fast path regardless of how it was styled, since its
// packed result is identical either way.
func ClassifyPartial(explicitFourLevel bool, pix []byte) domain.RefreshMode {
	if explicitFourLevel {
		return domain.PartialNoFlash
	}
	if codec.IsBlackWhite(pix) {
		return domain.PartialNoFlash
	}
	return domain.PartialFlash
}
