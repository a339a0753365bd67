package gouart

/*
 * UART Transmit Queue Library in Go
 *
 * Non-blocking, interrupt-driven byte transmission for serial peripherals:
 * application code enqueues bytes without waiting for the wire, and a
 * completion callback drains the queue one byte at a time until empty.
 *
 * Features:
 * - Lock-free single-producer/single-consumer transmit ring buffer
 * - Idle/Transmitting state machine driven by hardware completion signals
 * - String, hex, binary and printf-style producers
 * - Hardware access behind a Transmitter capability, testable without hardware
 *
 * License: MIT License
 */

import (
	"errors"
	"fmt"
	"log"

	"go.uber.org/atomic"
)

// Peripheral identifies which UART instance a driver is bound to. It only
// selects the Transmitter wired to the driver and the slot used for
// interrupt dispatch; it carries no further state.
type Peripheral int

const (
	USART1 Peripheral = iota
	USART2
	USART3
	LPUART1

	peripheralCount
)

// String returns the peripheral name.
func (p Peripheral) String() string {
	switch p {
	case USART1:
		return "USART1"
	case USART2:
		return "USART2"
	case USART3:
		return "USART3"
	case LPUART1:
		return "LPUART1"
	}
	return fmt.Sprintf("Peripheral(%d)", int(p))
}

func (p Peripheral) valid() bool {
	return p >= 0 && p < peripheralCount
}

// ErrInvalidPeripheral is returned when a driver is constructed with a
// peripheral outside the supported set.
var ErrInvalidPeripheral = errors.New("unknown UART peripheral")

// ErrNilTransmitter is returned when a driver is constructed without a
// Transmitter.
var ErrNilTransmitter = errors.New("transmitter must not be nil")

// Driver owns the transmit queue for one UART peripheral and sequences
// enqueue, kick-off, drain and idle.
//
// Send* methods belong to the producer context. OnByteSent belongs to the
// consumer context (the interrupt wiring) and may preempt the producer at
// any point; the two sides share only the queue indices and the active flag,
// all accessed atomically.
type Driver struct {
	peripheral Peripheral
	tx         Transmitter
	queue      *RingBuffer
	active     atomic.Bool
}

// NewDriver creates a driver for the given peripheral with a transmit queue
// of the given capacity. The capacity must be a power of two; the queue
// holds at most capacity-1 bytes.
func NewDriver(peripheral Peripheral, capacity uint32, tx Transmitter) (*Driver, error) {
	if !peripheral.valid() {
		return nil, ErrInvalidPeripheral
	}
	if tx == nil {
		return nil, ErrNilTransmitter
	}
	queue, err := NewRingBuffer(capacity)
	if err != nil {
		return nil, err
	}
	return &Driver{
		peripheral: peripheral,
		tx:         tx,
		queue:      queue,
	}, nil
}

// Initialize hands the configuration to the hardware layer and registers the
// driver for interrupt dispatch. The configuration values are opaque to the
// driver itself.
func (d *Driver) Initialize(cfg Config) error {
	if err := d.tx.Configure(cfg); err != nil {
		return err
	}
	Register(d)
	log.Printf("UART driver initialized on %s (queue capacity %d)", d.peripheral, d.queue.Capacity())
	return nil
}

// SendByte enqueues one byte and kicks off transmission if the hardware is
// idle. It returns false when the queue is full; nothing blocks and nothing
// is retried.
func (d *Driver) SendByte(b byte) bool {
	ok := d.queue.Put(b)
	if ok && !d.active.Load() {
		d.startTransmission()
	}
	return ok
}

// Send enqueues the given bytes in order, stopping at the first failure when
// the queue fills up, and returns how many were accepted. Partial acceptance
// is a defined outcome: callers must compare the result against len(data)
// and re-invoke with the remainder if they care.
func (d *Driver) Send(data []byte) int {
	sent := 0
	for _, b := range data {
		if !d.queue.Put(b) {
			break
		}
		sent++
	}
	d.kick(sent)
	return sent
}

// startTransmission moves the machine from Idle to Transmitting. It is a
// no-op when the queue is empty. The first byte is not dequeued here: the
// transmitter raises a ready signal once started, and the resulting
// OnByteSent call performs the dequeue. This is the only place the hardware
// is told to begin sending.
func (d *Driver) startTransmission() {
	if d.queue.IsEmpty() {
		return
	}
	d.active.Store(true)
	d.tx.Start()
}

// kick starts transmission after a bulk enqueue if anything was accepted and
// the machine is idle.
func (d *Driver) kick(sent int) {
	if sent > 0 && !d.active.Load() {
		d.startTransmission()
	}
}

// OnByteSent advances the drain loop by exactly one byte. The interrupt
// wiring calls it each time the hardware reports ready for the next byte:
// the next queued byte is handed to the transmitter, and the machine returns
// to idle once the queue has drained. Redundant calls on an idle driver are
// harmless.
func (d *Driver) OnByteSent() {
	b, ok := d.queue.Get()
	if !ok {
		d.active.Store(false)
		return
	}
	d.tx.Transmit(b)
	if d.queue.IsEmpty() {
		d.active.Store(false)
	}
}

// Active reports whether the hardware is currently draining the queue.
func (d *Driver) Active() bool {
	return d.active.Load()
}

// AvailableSpace returns how many more bytes can be queued.
func (d *Driver) AvailableSpace() int {
	return d.queue.AvailableSpace()
}

// QueueSize returns the number of queued bytes.
func (d *Driver) QueueSize() int {
	return d.queue.Size()
}

// Clear discards all queued bytes. A byte already handed to the hardware
// cannot be withdrawn: on an active driver the in-flight byte completes
// normally and the following OnByteSent observes the empty queue and
// deactivates.
func (d *Driver) Clear() {
	d.queue.Clear()
}

// PeripheralType returns the peripheral the driver is bound to.
func (d *Driver) PeripheralType() Peripheral {
	return d.peripheral
}
