package qrcode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// QRService renders booking tickets as QR codes pointing at the booking page.
type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &QRService{
		baseURL: baseURL,
	}
}

func (s *QRService) TicketURL(bookingID uint) string {
	return fmt.Sprintf("%s%d", s.baseURL, bookingID)
}

// GenerateTicket returns a PNG for the booking. Sizes outside 64..1024 fall back to DefaultSize.
func (s *QRService) GenerateTicket(bookingID uint, size int) ([]byte, error) {
	if size < 64 || size > 1024 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(s.TicketURL(bookingID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
