package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

const defaultSize = 200

// RenderPNG encodes the QR token into a PNG badge image.
func RenderPNG(token string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}

	png, err := qr.Encode(token, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	return png, nil
}
