package pix

import (
	"errors"
	"fmt"
	"strconv"
)

const maxFieldLength = 99

var (
	ErrValueTooLong = errors.New("field value too long")
	ErrInvalidTag   = errors.New("field tag must be two digits")
)

// Field is a single tag-length-value entry of a payload.
type Field struct {
	Tag   string
	Value string
}

// EncodeField renders tag, a two-digit byte length and value.
func EncodeField(tag, value string) (string, error) {
	if !isTag(tag) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	n := len(value)
	if n > maxFieldLength {
		return "", fmt.Errorf("%w: tag %s has %d bytes", ErrValueTooLong, tag, n)
	}
	return tag + lengthPrefix(n) + value, nil
}

func (f Field) Encode() (string, error) {
	return EncodeField(f.Tag, f.Value)
}

func lengthPrefix(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func isTag(tag string) bool {
	return len(tag) == 2 && isDigit(tag[0]) && isDigit(tag[1])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
