package epd

import (
	"encoding/binary"
	"image"

	"github.com/inkwire/inkwire/internal/domain"
)

// Commands
const (
	driverOutputControl            byte = 0x01
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	temperatureSensorControl       byte = 0x18
	masterActivation               byte = 0x20
	displayUpdateControl2          byte = 0x22
	writeRAM                       byte = 0x24
	writeVcomRegister              byte = 0x2C
	writeLutRegister               byte = 0x32
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
)

// Display update sequence selectors for displayUpdateControl2. The flash
// sequence loads the full-depth waveform from OTP; the no-flash sequence
// runs the short waveform previously written to the LUT register.
const (
	updateSequenceFlash   byte = 0xF7
	updateSequenceNoFlash byte = 0xC7
)

// vcomStepMV is the register granularity of the VCOM calibration voltage.
const vcomStepMV = 25

// controller abstracts the command/data transport so the register sequences
// below can be tested against a recording fake.
type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle()
}

// initDisplay programs the controller after a hardware reset.
func initDisplay(ctrl controller, opts *Opts) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{
		byte((opts.Height - 1) % 0x100),
		byte((opts.Height - 1) / 0x100),
		0x00,
	})

	// X and Y increment; advance the address counter in X direction.
	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendData([]byte{0b011})

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendData([]byte{0x05})

	ctrl.sendCommand(temperatureSensorControl)
	ctrl.sendData([]byte{0x80}) // internal sensor

	ctrl.sendCommand(writeVcomRegister)
	ctrl.sendData([]byte{byte(opts.VcomMV / vcomStepMV)})

	ctrl.waitUntilIdle()
}

// setWindow configures the target drawing area. The horizontal axis is
// addressed in bytes (two packed pixels each), which is why refresh windows
// must land on the 32 pixel alignment quantum.
func setWindow(ctrl controller, area image.Rectangle) {
	startX, endX := uint16(area.Min.X/2), uint16(area.Max.X/2-1)
	startY, endY := uint16(area.Min.Y), uint16(area.Max.Y-1)

	var startEndX, startEndY [4]byte
	binary.LittleEndian.PutUint16(startEndX[0:], startX)
	binary.LittleEndian.PutUint16(startEndX[2:], endX)
	binary.LittleEndian.PutUint16(startEndY[0:], startY)
	binary.LittleEndian.PutUint16(startEndY[2:], endY)

	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData(startEndX[:])

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData(startEndY[:])

	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData(startEndX[:2])

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData(startEndY[:2])
}

// writeImage streams a packed 4bpp raster into controller RAM, bounded to
// maxTransfer bytes per data burst.
func writeImage(ctrl controller, packed []byte, maxTransfer int) {
	ctrl.sendCommand(writeRAM)
	for len(packed) > 0 {
		n := maxTransfer
		if n > len(packed) {
			n = len(packed)
		}
		ctrl.sendData(packed[:n])
		packed = packed[n:]
	}
}

// refresh runs the update waveform for the given mode and blocks until the
// panel settles. The 4-level modes first load the short no-flash waveform;
// the 16-level modes use the factory waveform from OTP.
func refresh(ctrl controller, mode domain.RefreshMode) {
	sequence := updateSequenceFlash
	if mode.FourLevel() {
		ctrl.sendCommand(writeLutRegister)
		ctrl.sendData(noFlashLUT)
		sequence = updateSequenceNoFlash
	}

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendData([]byte{sequence})
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}
