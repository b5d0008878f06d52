// Package upi builds upi://pay deep links. A payer's app scans the link out
// of a QR image and pre-fills the payment.
package upi

import (
	"net/url"
	"strings"
)

// LinkParams are the payment fields carried by a UPI link. Only the payee
// handle is required; handle syntax is the caller's concern.
type LinkParams struct {
	PayeeID   string // pa: routable handle, e.g. name@bank
	PayeeName string // pn: display name, percent-encoded
	Amount    string // am: numeric string, passed through verbatim
	Note      string // tn: transaction note, percent-encoded
}

// BuildLink assembles the deep link. Parameter order is fixed
// (pa, pn, am, tn, cu) and the currency is always INR; optional fields are
// simply omitted. Deterministic and side-effect free.
func BuildLink(p LinkParams) string {
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(p.PayeeID)
	if p.PayeeName != "" {
		b.WriteString("&pn=")
		b.WriteString(escape(p.PayeeName))
	}
	if p.Amount != "" {
		b.WriteString("&am=")
		b.WriteString(p.Amount)
	}
	if p.Note != "" {
		b.WriteString("&tn=")
		b.WriteString(escape(p.Note))
	}
	b.WriteString("&cu=INR")
	return b.String()
}

// escape percent-encodes with %20 for spaces; UPI apps do not uniformly
// accept the form-encoding plus sign.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
