// Package webhook authenticates and dispatches Polar webhook deliveries.
//
// Polar signs deliveries with the Standard Webhooks scheme: three headers
// (webhook-id, webhook-timestamp, webhook-signature) and an HMAC-SHA256
// over "{id}.{timestamp}.{body}" keyed by the base64-decoded shared secret.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance is the freshness window applied to the timestamp header.
const DefaultTolerance = 5 * time.Minute

var (
	ErrMissingHeaders   = errors.New("webhook: missing signature headers")
	ErrInvalidSignature = errors.New("webhook: signature mismatch")
	ErrStaleTimestamp   = errors.New("webhook: timestamp outside freshness window")
	ErrMalformedEvent   = errors.New("webhook: malformed event body")
)

// Verifier checks webhook deliveries against the shared secret. Verification
// runs over the exact raw bytes received; the body is only parsed afterward.
type Verifier struct {
	key       []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier builds a Verifier from the shared secret as Polar issues it
// (base64, optionally prefixed "whsec_"). An empty or undecodable secret is
// a configuration error: the verifier refuses to exist rather than run with
// a key it cannot trust.
func NewVerifier(secret string, tolerance time.Duration) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("webhook: secret not configured")
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return nil, fmt.Errorf("webhook: decode secret: %w", err)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Verifier{key: key, tolerance: tolerance, now: time.Now}, nil
}

// Verify authenticates one delivery. body must be the untouched bytes read
// off the wire — any reserialization before this point breaks the signature.
// The signature header may carry several space-separated "v1,<base64>"
// entries (secret rotation); one constant-time match accepts.
func (v *Verifier) Verify(body []byte, id, timestamp, signature string) error {
	if id == "" || timestamp == "" || signature == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: unparseable timestamp %q", ErrStaleTimestamp, timestamp)
	}
	age := v.now().Sub(time.Unix(ts, 0))
	if age > v.tolerance || age < -v.tolerance {
		return fmt.Errorf("%w: age %s", ErrStaleTimestamp, age)
	}

	expected := v.sign(id, timestamp, body)
	for _, part := range strings.Fields(signature) {
		encoded, ok := strings.CutPrefix(part, "v1,")
		if !ok {
			continue
		}
		sig, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			continue
		}
		if hmac.Equal(sig, expected) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// Authenticate verifies the delivery and, only then, parses the body into a
// typed event. A verified body that does not decode is ErrMalformedEvent,
// distinct from an authentication failure.
func (v *Verifier) Authenticate(body []byte, id, timestamp, signature string) (*Event, error) {
	if err := v.Verify(body, id, timestamp, signature); err != nil {
		return nil, err
	}
	return ParseEvent(body)
}

// Sign computes the "v1,<base64>" signature for a delivery. Exported for
// test harnesses and local delivery tooling.
func (v *Verifier) Sign(id string, timestamp int64, body []byte) string {
	sig := v.sign(id, strconv.FormatInt(timestamp, 10), body)
	return "v1," + base64.StdEncoding.EncodeToString(sig)
}

func (v *Verifier) sign(id, timestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return mac.Sum(nil)
}
