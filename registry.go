package gouart

import (
	"log"

	"go.uber.org/atomic"
)

// The interrupt entry point carries no context argument, so a fixed table
// maps each peripheral to its driver instance. The table is populated during
// initialization from the producer context and read on the interrupt path
// with a single atomic load; no mutex is ever taken there.
var drivers [peripheralCount]atomic.Value // holds *Driver

// Register binds a driver to its peripheral's interrupt slot, replacing any
// previous registration.
func Register(d *Driver) {
	if d == nil || !d.peripheral.valid() {
		return
	}
	drivers[d.peripheral].Store(d)
	log.Printf("registered %s interrupt handler", d.peripheral)
}

// Unregister removes the driver bound to the peripheral, if any.
func Unregister(p Peripheral) {
	if !p.valid() {
		return
	}
	drivers[p].Store((*Driver)(nil))
}

// RegisteredDriver returns the driver bound to the peripheral, or nil.
func RegisteredDriver(p Peripheral) *Driver {
	if !p.valid() {
		return nil
	}
	d, _ := drivers[p].Load().(*Driver)
	return d
}

// HandleInterrupt is the interrupt entry point: it dispatches a transmit
// completion signal to the driver registered for the peripheral. Signals for
// unknown or unregistered peripherals are dropped.
func HandleInterrupt(p Peripheral) {
	if d := RegisteredDriver(p); d != nil {
		d.OnByteSent()
	}
}
