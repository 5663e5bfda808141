package qrcode

// Renderer turns a payload string into an image. The payload is passed
// through unchanged.
type Renderer interface {
	Render(payload string) ([]byte, error)
}
