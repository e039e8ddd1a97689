// Package qrcode renders kit registration QR codes.
package qrcode

import (
	goqrcode "github.com/skip2/go-qrcode"

	"aevum/config"
	"aevum/internal/domain/service"
	"aevum/internal/errors"
)

const defaultSize = 256

// qrCodeService implements service.QRCodeService using skip2/go-qrcode.
type qrCodeService struct {
	size  int
	level goqrcode.RecoveryLevel
}

// NewQRCodeService creates a QR code renderer from config.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	level := goqrcode.Medium
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = parseRecoveryLevel(cfg.QRCode.ErrorCorrectionLevel)
	}
	return &qrCodeService{size: size, level: level}
}

// GeneratePNG renders the given content as a PNG image.
func (s *qrCodeService) GeneratePNG(content string) ([]byte, error) {
	png, err := goqrcode.Encode(content, s.level, s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode qr code")
	}
	return png, nil
}

func parseRecoveryLevel(level string) goqrcode.RecoveryLevel {
	switch level {
	case "low":
		return goqrcode.Low
	case "high":
		return goqrcode.High
	case "highest":
		return goqrcode.Highest
	default:
		return goqrcode.Medium
	}
}
