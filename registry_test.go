package gouart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDispatch(t *testing.T) {
	d, lt := newManualDriver(t, USART3, 8)
	Register(d)
	defer Unregister(USART3)

	d.SendByte(0x33)
	HandleInterrupt(USART3)
	assert.Equal(t, []byte{0x33}, lt.Sent())
	assert.False(t, d.Active())
}

func TestRegistryUnregistered(t *testing.T) {
	Unregister(USART2)
	assert.Nil(t, RegisteredDriver(USART2))

	// Signals for unregistered or unknown peripherals are dropped.
	HandleInterrupt(USART2)
	HandleInterrupt(Peripheral(99))
	HandleInterrupt(Peripheral(-1))
}

func TestRegistryReplace(t *testing.T) {
	first, _ := newManualDriver(t, USART1, 8)
	second, lt2 := newManualDriver(t, USART1, 8)
	defer Unregister(USART1)

	Register(first)
	Register(second)
	require.Same(t, second, RegisteredDriver(USART1))

	second.SendByte(0x01)
	HandleInterrupt(USART1)
	assert.Equal(t, []byte{0x01}, lt2.Sent())
}

func TestRegistryIgnoresInvalid(t *testing.T) {
	Register(nil)

	d, _ := newManualDriver(t, LPUART1, 8)
	d.peripheral = Peripheral(7) // simulate a corrupted tag
	Register(d)
	assert.Nil(t, RegisteredDriver(Peripheral(7)))
}
