package service

// QRCodeService defines the interface for rendering QR codes.
type QRCodeService interface {
	// GeneratePNG renders the given content as a PNG image.
	GeneratePNG(content string) ([]byte, error)
}
