// Package payment builds the links a payment gateway uses to collect surcharges.
// It never moves money; the gateway reports completed payments back separately.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
)

type LinkGenerator struct {
	base   *url.URL
	secret []byte
}

func NewLinkGenerator(baseURL, secret string) (*LinkGenerator, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("payment base url must be absolute: %q", baseURL)
	}
	return &LinkGenerator{base: u, secret: []byte(secret)}, nil
}

// Reference is a stable opaque id for one outstanding charge.
func (g *LinkGenerator) Reference(bookingID string, memberID int, amount int64) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s:%d:%d", bookingID, memberID, amount)
	return hex.EncodeToString(mac.Sum(nil))[:32]
}

// URL is deterministic: the same charge always yields the same link.
func (g *LinkGenerator) URL(bookingID string, memberID int, amount int64) string {
	u := *g.base
	q := u.Query()
	q.Set("booking", bookingID)
	q.Set("member", strconv.Itoa(memberID))
	q.Set("amount", strconv.FormatInt(amount, 10))
	q.Set("ref", g.Reference(bookingID, memberID, amount))
	u.RawQuery = q.Encode()
	return u.String()
}
