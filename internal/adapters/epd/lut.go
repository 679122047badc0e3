package epd

// noFlashLUT is the short waveform for the 4-level no-flash update mode.
// It drives each pixel directly to one of the four target gray levels
// without the black/white shaking pass the factory waveform performs, which
// is what makes the update flicker-free (and what limits it to 4 levels).
var noFlashLUT = []byte{
	0x32, 0x02, 0x20, 0x00, 0x00, 0x00, 0x00,
	0x0A, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00,
	0x12, 0x02, 0x20, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

	0x05, 0x02, 0x00, 0x00, 0x01,
	0x05, 0x02, 0x00, 0x00, 0x01,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
}
