package gouart

/*
 * UART Transmit Queue Library in Go
 *
 * Production Transmitter backed by a serial port. The pump goroutine plays
 * the role of the interrupt wiring: every start request and every completed
 * one-byte write raises a ready signal through HandleInterrupt, which drives
 * the owning driver's drain loop.
 *
 * License: MIT License
 */

import (
	"errors"
	"fmt"
	"log"
	"sync"

	serial "github.com/albenik/go-serial/v2"
	"github.com/albenik/go-serial/v2/enumerator"
)

// ErrPortNotOpen is returned when the transmitter is used before Configure
// succeeded.
var ErrPortNotOpen = errors.New("serial port not open")

// SerialTransmitter drives a real serial port on behalf of one driver.
type SerialTransmitter struct {
	peripheral Peripheral
	portName   string

	port   *serial.Port
	txCh   chan byte
	kickCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewSerialTransmitter creates a transmitter for the given peripheral on the
// named port (e.g. "/dev/ttyUSB0" or "COM3"). The port is opened by
// Configure.
func NewSerialTransmitter(peripheral Peripheral, portName string) *SerialTransmitter {
	return &SerialTransmitter{
		peripheral: peripheral,
		portName:   portName,
		txCh:       make(chan byte, 1),
		kickCh:     make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// Configure opens the port with the given line settings and starts the pump.
// Flow control and direction have no portable serial equivalent here and are
// left to the platform, as the driver treats them opaquely anyway.
func (t *SerialTransmitter) Configure(cfg Config) error {
	port, err := serial.Open(t.portName,
		serial.WithBaudrate(cfg.BaudRate),
		serial.WithDataBits(cfg.WordLength),
		serial.WithStopBits(convertStopBits(cfg.StopBits)),
		serial.WithParity(convertParity(cfg.Parity)),
		serial.WithWriteTimeout(1000),
	)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", t.portName, err)
	}
	t.port = port
	t.once.Do(func() { go t.pump() })
	log.Printf("opened serial port %s for %s at %d baud", t.portName, t.peripheral, cfg.BaudRate)
	return nil
}

// Start requests a ready signal. Redundant requests coalesce.
func (t *SerialTransmitter) Start() {
	select {
	case t.kickCh <- struct{}{}:
	default:
	}
}

// Transmit hands one byte to the pump. The state machine keeps at most one
// byte in flight, so the mailbox is never full unless the contract is
// violated, in which case the byte is dropped.
func (t *SerialTransmitter) Transmit(b byte) {
	select {
	case t.txCh <- b:
	default:
		log.Printf("%s: transmit mailbox full, byte 0x%02X dropped", t.peripheral, b)
	}
}

// Ready reports whether the port is open and the mailbox empty.
func (t *SerialTransmitter) Ready() bool {
	return t.port != nil && len(t.txCh) == 0
}

// Close stops the pump and closes the port. Queued but untransmitted bytes
// remain in the driver's queue.
func (t *SerialTransmitter) Close() error {
	close(t.done)
	if t.port != nil {
		return t.port.Close()
	}
	return nil
}

// pump writes bytes to the wire one at a time and raises a ready signal
// after each, so the drain loop always advances. A failed write loses that
// byte but still signals, otherwise the queue would stall forever.
func (t *SerialTransmitter) pump() {
	for {
		select {
		case <-t.done:
			return
		case <-t.kickCh:
			HandleInterrupt(t.peripheral)
		case b := <-t.txCh:
			if _, err := t.port.Write([]byte{b}); err != nil {
				log.Printf("%s: serial write failed: %v", t.peripheral, err)
			}
			HandleInterrupt(t.peripheral)
		}
	}
}

func convertParity(p Parity) serial.Parity {
	switch p {
	case ParityOdd:
		return serial.OddParity
	case ParityEven:
		return serial.EvenParity
	default:
		return serial.NoParity
	}
}

func convertStopBits(s StopBits) serial.StopBits {
	switch s {
	case TwoStopBits:
		return serial.TwoStopBits
	default:
		return serial.OneStopBit
	}
}

// FindUSBPort returns the name of the first USB serial port matching the
// given vendor and product IDs.
func FindUSBPort(vendorID, productID string) (string, *enumerator.PortDetails, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", nil, err
	}
	if len(ports) == 0 {
		return "", nil, errors.New("no serial ports found")
	}
	for _, port := range ports {
		if port.IsUSB && port.VID == vendorID && port.PID == productID {
			return port.Name, port, nil
		}
	}
	return "", nil, errors.New("no matching USB port found")
}
