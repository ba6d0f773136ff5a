//go:build tinygo

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers"
)

// gc9a01 drives the 240x240 round panel over SPI. Pixel data is submitted
// through a bounded transfer queue serviced by a dedicated goroutine, so
// WriteRect returns before the bus transfer finishes; the completion
// handler fires from the transfer goroutine once the panel has the data.
// On targets with DMA-backed SPI (the ESP32-S3 among them) the machine
// package drives the transfer by DMA and the goroutine only sleeps on it.
//
// Buffers handed to WriteRect are already in wire order (byte-swapped,
// polarity-corrected upstream); this driver never touches pixel values.
const gcQueueDepth = 10

type gcXfer struct {
	x1, y1, x2, y2 int
	pix            []byte
}

type gc9a01 struct {
	spi *machine.SPI
	bus drivers.SPI
	cs  machine.Pin
	dc  machine.Pin
	bl  machine.Pin

	queue chan gcXfer
	done  func()
}

func newGC9A01(spi *machine.SPI, cs, dc, bl machine.Pin) *gc9a01 {
	d := &gc9a01{
		spi:   spi,
		bus:   spi,
		cs:    cs,
		dc:    dc,
		bl:    bl,
		queue: make(chan gcXfer, gcQueueDepth),
	}

	d.cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.dc.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.bl.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.cs.High()
	d.dc.High()
	d.bl.Low()

	return d
}

func (d *gc9a01) init() {
	// Inter-register enable, then the vendor tuning block.
	d.cmd(0xFE)
	d.cmd(0xEF)
	d.cmd(0xEB, 0x14)
	d.cmd(0x84, 0x40)
	d.cmd(0x85, 0xFF)
	d.cmd(0x86, 0xFF)
	d.cmd(0x87, 0xFF)
	d.cmd(0x8E, 0xFF)
	d.cmd(0x8F, 0xFF)
	d.cmd(0xB6, 0x00, 0x00) // DISCTRL

	// Orientation for the round display board: swap axes, mirror both,
	// BGR panel order.
	d.cmd(0x36, 0x20|0x40|0x80|0x08) // MADCTL MV|MX|MY|BGR

	d.cmd(0x3A, 0x05) // COLMOD: 16bpp

	// Power and gamma, per the panel vendor.
	d.cmd(0xC3, 0x13) // VREG1A
	d.cmd(0xC4, 0x13) // VREG1B
	d.cmd(0xC9, 0x22) // VREG2A
	d.cmd(0xF0, 0x45, 0x09, 0x08, 0x08, 0x26, 0x2A) // GAMMA1
	d.cmd(0xF1, 0x43, 0x70, 0x72, 0x36, 0x37, 0x6F) // GAMMA2
	d.cmd(0xF2, 0x45, 0x09, 0x08, 0x08, 0x26, 0x2A) // GAMMA3
	d.cmd(0xF3, 0x43, 0x70, 0x72, 0x36, 0x37, 0x6F) // GAMMA4

	d.cmd(0x35, 0x00) // TEON

	// This glass wants inversion mode; the pipeline compensates by
	// complementing pixel values before transmission.
	d.cmd(0x21) // INVON

	d.cmd(0x11) // SLPOUT
	time.Sleep(120 * time.Millisecond)
	d.cmd(0x29) // DISPON
	time.Sleep(20 * time.Millisecond)

	d.bl.High()

	go d.transferLoop()
}

func (d *gc9a01) Size() (int, int) { return 240, 240 }

func (d *gc9a01) Configure(busClockHz uint32) error {
	return d.spi.Configure(machine.SPIConfig{
		SCK:       pinLCDSCK,
		SDO:       pinLCDMOSI,
		Frequency: busClockHz,
	})
}

func (d *gc9a01) SetCompletionHandler(fn func()) { d.done = fn }

func (d *gc9a01) WriteRect(x1, y1, x2, y2 int, pix []byte) error {
	select {
	case d.queue <- gcXfer{x1, y1, x2, y2, pix}:
		return nil
	default:
		return ErrBusy
	}
}

func (d *gc9a01) transferLoop() {
	for x := range d.queue {
		d.setWindow(uint16(x.x1), uint16(x.y1), uint16(x.x2), uint16(x.y2))

		d.cs.Low()
		d.dc.High()
		for off := 0; off < len(x.pix); off += 4096 {
			end := off + 4096
			if end > len(x.pix) {
				end = len(x.pix)
			}
			d.bus.Tx(x.pix[off:end], nil)
		}
		d.cs.High()

		if d.done != nil {
			d.done()
		}
	}
}

func (d *gc9a01) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(
		0x2A, // CASET
		byte(x0>>8), byte(x0),
		byte(x1>>8), byte(x1),
	)
	d.cmd(
		0x2B, // RASET
		byte(y0>>8), byte(y0),
		byte(y1>>8), byte(y1),
	)
	d.cmd(0x2C) // RAMWR
}

func (d *gc9a01) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.bus.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.bus.Tx(data, nil)
	}
	d.cs.High()
}
