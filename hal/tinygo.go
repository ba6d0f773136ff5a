//go:build tinygo

package hal

import (
	"machine"
)

// Pin assignment for the XIAO ESP32-S3 with the Seeed round display
// expansion board.
const (
	pinLCDCS   = machine.Pin(2)
	pinLCDDC   = machine.Pin(4)
	pinLCDSCK  = machine.Pin(7)
	pinLCDMOSI = machine.Pin(9)
	pinLCDBL   = machine.Pin(43)

	pinTouchSDA = machine.Pin(5)
	pinTouchSCL = machine.Pin(6)
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	panel  *gc9a01
	touch  *chsc6x
	t      *tinyGoTime
}

// New returns the XIAO round display HAL implementation.
//
// UART: UART0 at 115200 8N1 for logs. The panel hangs off SPI2, the touch
// controller off I2C0.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{BaudRate: 115200})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	machine.SPI2.Configure(machine.SPIConfig{
		SCK:       pinLCDSCK,
		SDO:       pinLCDMOSI,
		Frequency: 80_000_000,
	})

	machine.I2C0.Configure(machine.I2CConfig{
		SDA:       pinTouchSDA,
		SCL:       pinTouchSCL,
		Frequency: 400_000,
	})

	panel := newGC9A01(machine.SPI2, pinLCDCS, pinLCDDC, pinLCDBL)
	panel.init()

	return &tinyGoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		panel:  panel,
		touch:  newCHSC6X(machine.I2C0, logger),
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) LED() LED           { return h.led }
func (h *tinyGoHAL) Display() Transport { return h.panel }
func (h *tinyGoHAL) Touch() Touch       { return h.touch }
func (h *tinyGoHAL) Time() Time         { return h.t }
