package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// TrackingQR encodes a link to the customer's order status page.
type TrackingQR struct {
	BaseURL string
	Size    int
}

func (g TrackingQR) Generate(orderID string) ([]byte, error) {
	size := g.Size
	if size == 0 {
		size = 256
	}
	return qrcode.Encode(g.TrackingURL(orderID), qrcode.Medium, size)
}

func (g TrackingQR) TrackingURL(orderID string) string {
	return fmt.Sprintf("%s/track?order=%s", strings.TrimRight(g.BaseURL, "/"), url.QueryEscape(orderID))
}
