// Package qr renders payment QR codes: it builds the UPI deep link and wraps
// the image encoder with the dashboard's size and border presets.
package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"

	"upitrack/internal/services/upi"
)

// Service renders UPI payment QR codes. Stateless and safe for concurrent
// use.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Generate builds the UPI URI for opts and encodes it as a PNG data URL at
// high error correction. Encoder errors (an over-length payload, mostly)
// surface unchanged.
func (s *Service) Generate(opts Options) (*Generated, error) {
	size := opts.Size
	if _, ok := pixelSizes[size]; !ok {
		size = "medium"
	}
	style := opts.BorderStyle
	preset, ok := borderPresets[style]
	if !ok {
		style = "simple"
		preset = borderPresets[style]
	}

	upiURL := upi.BuildLink(upi.LinkParams{
		PayeeID:   opts.UpiID,
		PayeeName: opts.Name,
		Amount:    opts.Amount,
		Note:      opts.Description,
	})

	code, err := qrcode.New(upiURL, qrcode.Highest)
	if err != nil {
		return nil, err
	}
	if preset.override {
		code.ForegroundColor = preset.dark
		code.BackgroundColor = preset.light
	}

	png, err := code.PNG(pixelSizes[size])
	if err != nil {
		return nil, err
	}

	return &Generated{
		Data:        "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		UpiURL:      upiURL,
		Size:        size,
		BorderStyle: style,
	}, nil
}
