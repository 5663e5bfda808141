package pix

import (
	"fmt"

	"github.com/howeyc/crc16"
)

// Checksum returns the CRC-16/CCITT-FALSE of data
// (poly 0x1021, init 0xFFFF, no reflection, no final xor).
func Checksum(data []byte) uint16 {
	return crc16.ChecksumCCITTFalse(data)
}

// FormatChecksum renders sum as four uppercase hex digits.
func FormatChecksum(sum uint16) string {
	return fmt.Sprintf("%04X", sum)
}
