package gouart

import "fmt"

const (
	hexUpper = "0123456789ABCDEF"
	hexLower = "0123456789abcdef"
)

// SendString enqueues the raw bytes of s, stopping when the queue fills up,
// and returns how many were accepted.
func (d *Driver) SendString(s string) int {
	sent := 0
	for i := 0; i < len(s); i++ {
		if !d.queue.Put(s[i]) {
			break
		}
		sent++
	}
	d.kick(sent)
	return sent
}

// SendFormatted formats according to fmt rules and enqueues the result. It
// returns how many bytes were accepted.
func (d *Driver) SendFormatted(format string, args ...interface{}) int {
	if format == "" {
		return 0
	}
	return d.Send([]byte(fmt.Sprintf(format, args...)))
}

// SendHex enqueues two ASCII hex digits per input byte, high nibble first.
// Encoding stops as soon as the queue fills up, possibly between the two
// digits of a byte; the count reflects digits actually accepted.
func (d *Driver) SendHex(data []byte, uppercase bool) int {
	alphabet := hexLower
	if uppercase {
		alphabet = hexUpper
	}

	sent := 0
	for _, b := range data {
		if !d.queue.Put(alphabet[b>>4]) {
			break
		}
		sent++
		if !d.queue.Put(alphabet[b&0x0F]) {
			break
		}
		sent++
	}
	d.kick(sent)
	return sent
}

// SendBinary enqueues eight ASCII '0'/'1' characters per input byte, most
// significant bit first. When the queue fills up mid-byte the remaining bits
// of that byte are lost; the count reflects bits actually accepted.
func (d *Driver) SendBinary(data []byte) int {
	sent := 0
	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			c := byte('0')
			if b>>uint(bit)&1 != 0 {
				c = '1'
			}
			if !d.queue.Put(c) {
				d.kick(sent)
				return sent
			}
			sent++
		}
	}
	d.kick(sent)
	return sent
}
