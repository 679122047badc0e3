// Package epd implements ports.Panel for a 16-gray SPI e-paper controller.
//
// The controller takes its raster as packed 4-bit pixels (two per byte) and
// supports two update waveforms: the factory full-depth waveform, which
// flashes the panel, and a short 4-level waveform that updates without a
// flash. The adapter maps domain.RefreshMode onto those waveforms; all
// packing and mode decisions happen upstream in the engine.
package epd

import (
	"context"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/inkwire/inkwire/internal/domain"
	"github.com/inkwire/inkwire/internal/ports"
)

// busyPollInterval is how often the busy pin is sampled while the panel
// settles after a refresh.
const busyPollInterval = 10 * time.Millisecond

// Opts defines the panel wiring and calibration.
type Opts struct {
	// SPIPort is the spireg port name; empty selects the first available.
	SPIPort string

	// Pin names resolved via gpioreg (e.g. "GPIO25").
	DCPin    string
	CSPin    string
	ResetPin string
	BusyPin  string

	// Width and Height are the panel dimensions in pixels.
	Width  int
	Height int

	// VcomMV is the VCOM calibration voltage in millivolts (positive,
	// panel-specific, printed on the flex cable).
	VcomMV int

	// MaxTransfer bounds the bytes sent per SPI data burst.
	MaxTransfer int
}

func (o Opts) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: epd: panel dimensions %dx%d", domain.ErrInvalidConfig, o.Width, o.Height)
	}
	// Two pixels per byte; an odd width cannot be addressed.
	if o.Width%2 != 0 {
		return fmt.Errorf("%w: epd: width %d must be even", domain.ErrInvalidConfig, o.Width)
	}
	if o.MaxTransfer <= 0 {
		return fmt.Errorf("%w: epd: max transfer %d must be positive", domain.ErrInvalidConfig, o.MaxTransfer)
	}
	return nil
}

// Dev drives the display controller over SPI. It implements ports.Panel.
type Dev struct {
	c    conn.Conn
	port spi.PortCloser

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIO

	opts Opts
}

// New opens the SPI port and GPIO pins for the panel. The controller is not
// touched until Init.
func New(opts Opts) (*Dev, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("epd: host init: %w", err)
	}

	port, err := spireg.Open(opts.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("epd: open spi port %q: %w", opts.SPIPort, err)
	}

	c, err := port.Connect(5*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("epd: connect spi: %w", err)
	}

	d := &Dev{c: c, port: port, opts: opts}

	for _, p := range []struct {
		name string
		dst  *gpio.PinOut
	}{
		{opts.DCPin, &d.dc},
		{opts.CSPin, &d.cs},
		{opts.ResetPin, &d.rst},
	} {
		pin := gpioreg.ByName(p.name)
		if pin == nil {
			_ = port.Close()
			return nil, fmt.Errorf("epd: unknown pin %q", p.name)
		}
		*p.dst = pin
	}

	busy := gpioreg.ByName(opts.BusyPin)
	if busy == nil {
		_ = port.Close()
		return nil, fmt.Errorf("epd: unknown pin %q", opts.BusyPin)
	}
	d.busy = busy

	return d, nil
}

// errorHandler latches the first transport error across a pin/SPI call
// sequence so the register helpers stay linear.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) sendCommand(c byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.writeByte(c, gpio.Low)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.writeData(data)
}

func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	for eh.d.busy.Read() == gpio.High {
		time.Sleep(busyPollInterval)
	}
}

func (d *Dev) writeByte(b byte, dcLevel gpio.Level) error {
	if err := d.dc.Out(dcLevel); err != nil {
		return err
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{b}, nil); err != nil {
		return err
	}
	return d.cs.Out(gpio.High)
}

func (d *Dev) writeData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx(data, nil); err != nil {
		return err
	}
	return d.cs.Out(gpio.High)
}

// reset pulses the hardware reset line.
func (d *Dev) reset() error {
	eh := errorHandler{d: d}

	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(2 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)

	return eh.err
}

// Init resets the controller and programs the register defaults.
func (d *Dev) Init(ctx context.Context) error {
	if err := d.reset(); err != nil {
		return fmt.Errorf("epd: reset: %w", err)
	}

	eh := errorHandler{d: d}
	initDisplay(&eh, &d.opts)
	if eh.err != nil {
		return fmt.Errorf("epd: init: %w", eh.err)
	}
	return nil
}

// Bounds returns the panel dimensions.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// Draw writes one packed raster into the window rect and refreshes it with
// the waveform matching mode.
func (d *Dev) Draw(ctx context.Context, packed []byte, rect image.Rectangle, mode domain.RefreshMode) error {
	if want := rect.Dx() * rect.Dy() / 2; len(packed) != want {
		return fmt.Errorf("%w: %d packed bytes for %s, want %d", domain.ErrRasterSize, len(packed), rect, want)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	setWindow(&eh, rect)
	writeImage(&eh, packed, d.opts.MaxTransfer)
	refresh(&eh, mode)

	if eh.err != nil {
		return fmt.Errorf("epd: draw %s %s: %w", mode, rect, eh.err)
	}
	return nil
}

// Clear blanks the whole panel to white with a flash refresh.
func (d *Dev) Clear(ctx context.Context) error {
	rect := d.Bounds()
	packed := make([]byte, rect.Dx()*rect.Dy()/2)
	for i := range packed {
		packed[i] = 0xFF
	}
	return d.Draw(ctx, packed, rect, domain.Full16)
}

// Close puts the controller into deep sleep and releases the SPI port.
func (d *Dev) Close() error {
	eh := errorHandler{d: d}
	eh.sendCommand(deepSleepMode)
	eh.sendData([]byte{0x01})

	if err := d.port.Close(); err != nil {
		return err
	}
	return eh.err
}

var _ ports.Panel = (*Dev)(nil)
