package gouart

import "sync"

// Transmitter is the capability the driver uses to reach the physical
// peripheral. Implementations must be non-blocking: the state machine never
// has more than one byte in flight, and both Start and Transmit are called
// with that guarantee.
type Transmitter interface {
	// Configure programs the hardware with the given values. The driver
	// treats the configuration as opaque.
	Configure(cfg Config) error
	// Start asks the hardware to begin raising ready signals. Each ready
	// signal must eventually reach the owning driver's OnByteSent, usually
	// through HandleInterrupt. Redundant Start calls must be tolerated.
	Start()
	// Transmit loads one byte into the hardware. Its completion must raise
	// another ready signal.
	Transmit(b byte)
	// Ready reports whether the hardware can accept a byte. Diagnostic use
	// only; the drain loop relies on ready signals, not polling.
	Ready() bool
}

// Loopback is an in-memory Transmitter for tests and diagnostics. It records
// every transmitted byte and, when AutoDrain is set, immediately loops the
// completion signal back into the attached driver so an entire queue drains
// within a single Send call. With AutoDrain unset the test drives
// completions explicitly through Complete.
type Loopback struct {
	// AutoDrain makes every Start/Transmit synchronously invoke the attached
	// driver's OnByteSent.
	AutoDrain bool

	mu     sync.Mutex
	sent   []byte
	cfg    Config
	hasCfg bool
	driver *Driver
}

// NewLoopback creates a Loopback that drains automatically.
func NewLoopback() *Loopback {
	return &Loopback{AutoDrain: true}
}

// Attach wires the loopback's completion signals to a driver.
func (l *Loopback) Attach(d *Driver) {
	l.driver = d
}

// Configure records the configuration and succeeds.
func (l *Loopback) Configure(cfg Config) error {
	l.mu.Lock()
	l.cfg = cfg
	l.hasCfg = true
	l.mu.Unlock()
	return nil
}

// Start raises a ready signal when AutoDrain is set.
func (l *Loopback) Start() {
	if l.AutoDrain && l.driver != nil {
		l.driver.OnByteSent()
	}
}

// Transmit records the byte and, when AutoDrain is set, signals completion.
func (l *Loopback) Transmit(b byte) {
	l.mu.Lock()
	l.sent = append(l.sent, b)
	l.mu.Unlock()
	if l.AutoDrain && l.driver != nil {
		l.driver.OnByteSent()
	}
}

// Ready always reports true.
func (l *Loopback) Ready() bool {
	return true
}

// Complete raises one ready signal on the attached driver. Used by tests
// that step the drain loop manually.
func (l *Loopback) Complete() {
	if l.driver != nil {
		l.driver.OnByteSent()
	}
}

// Sent returns a copy of every byte transmitted so far.
func (l *Loopback) Sent() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]byte, len(l.sent))
	copy(out, l.sent)
	return out
}

// LastConfig returns the configuration recorded by Configure, and whether
// Configure has been called.
func (l *Loopback) LastConfig() (Config, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg, l.hasCfg
}

// Reset forgets all recorded bytes.
func (l *Loopback) Reset() {
	l.mu.Lock()
	l.sent = nil
	l.mu.Unlock()
}
