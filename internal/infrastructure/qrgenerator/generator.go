package qrgenerator

import (
	"errors"

	qr "github.com/skip2/go-qrcode"
)

var ErrEmptyPayload = errors.New("empty qr payload")

type Generator struct {
	size int
}

func NewGenerator(size int) *Generator {
	return &Generator{size: size}
}

// Render encodes payload verbatim as a PNG. Medium recovery keeps long Pix
// payloads readable at the configured size.
func (g *Generator) Render(payload string) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	return qr.Encode(payload, qr.Medium, g.size)
}
