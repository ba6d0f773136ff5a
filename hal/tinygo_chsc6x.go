//go:build tinygo

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers"
)

// chsc6x polls the capacitive touch controller on the round display board.
// The chip answers a plain 6-byte read: status, then x and y. Coordinate
// transforms for the board's wiring (axis swap, x mirror) happen here so
// the pipeline sees logical screen coordinates.
const chsc6xAddr = 0x2E

type chsc6x struct {
	bus    drivers.I2C
	logger Logger

	buf        [6]byte
	lastWarnAt time.Time
}

func newCHSC6X(bus drivers.I2C, logger Logger) *chsc6x {
	// The controller needs about a second after power-on before it
	// responds on the bus.
	time.Sleep(1 * time.Second)
	return &chsc6x{bus: bus, logger: logger}
}

func (t *chsc6x) Read() (TouchState, error) {
	err := t.bus.Tx(chsc6xAddr, nil, t.buf[:])
	if err != nil {
		// Throttle: a disconnected ribbon cable would otherwise flood
		// the log at the polling rate.
		if now := time.Now(); now.Sub(t.lastWarnAt) > 5*time.Second {
			t.lastWarnAt = now
			if t.logger != nil {
				t.logger.WriteLineString("chsc6x: read failed, reporting no touch")
			}
		}
		return TouchState{}, err
	}

	if t.buf[0] != 0x01 {
		return TouchState{}, nil
	}

	x := int16(t.buf[2])
	y := int16(t.buf[4])

	// Board wiring: axes swapped, x mirrored.
	x, y = y, x
	x = 239 - x

	return TouchState{X: x, Y: y, Pressed: true}, nil
}
