package gouart

// Parity selects the parity bit scheme.
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// StopBits selects the number of stop bits.
type StopBits int

const (
	OneStopBit StopBits = iota
	TwoStopBits
)

// FlowControl selects hardware flow control.
type FlowControl int

const (
	FlowControlNone FlowControl = iota
	FlowControlRTSCTS
)

// Direction selects which transfer directions the peripheral enables.
type Direction int

const (
	DirectionRx Direction = 1 << iota
	DirectionTx
	DirectionTxRx Direction = DirectionRx | DirectionTx
)

// Config carries the UART line settings. The driver core never interprets
// these values; they are handed as-is to the Transmitter, whose hardware
// layer programs the peripheral.
type Config struct {
	BaudRate    int
	WordLength  int // data bits per word
	StopBits    StopBits
	Parity      Parity
	FlowControl FlowControl
	Direction   Direction
}

// DefaultLPUARTConfig returns the default line settings for the low-power
// UART: 115200 baud, 8 data bits, 1 stop bit, no parity, no flow control,
// both directions enabled.
func DefaultLPUARTConfig() Config {
	return Config{
		BaudRate:    115200,
		WordLength:  8,
		StopBits:    OneStopBit,
		Parity:      ParityNone,
		FlowControl: FlowControlNone,
		Direction:   DirectionTxRx,
	}
}

// DefaultUSARTConfig returns the default line settings for the regular
// USART peripherals. Currently identical to the LPUART defaults.
func DefaultUSARTConfig() Config {
	return DefaultLPUARTConfig()
}
