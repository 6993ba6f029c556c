package report

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// HeadlineQR creates a QR code PNG encoding the grep-friendly headline
// digest.
func HeadlineQR(headline string, size int) ([]byte, error) {
	normalized := strings.TrimSpace(headline)
	if normalized == "" {
		return nil, fmt.Errorf("headline is empty")
	}
	if size <= 0 {
		size = 128
	}
	return qrcode.Encode(normalized, qrcode.Medium, size)
}
