package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

	errMissingRequestAt = errors.New("missing " + HeaderRequestAt)
	errBadRequestAt     = errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
)

// clock is swapped in tests that exercise the skew window.
var clock = func() time.Time { return time.Now().UTC() }

// fingerprint identifies a request body so a reused Ax-Request-Id with a
// different payload is refused instead of replayed.
func fingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// validRequestID accepts lowercase UUIDs (v1-v5) and 32-char lowercase hex.
func validRequestID(id string) bool {
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

// parseRequestAt reads Ax-Request-At as epoch seconds, epoch millis or an
// RFC3339 timestamp carrying a zone. Naive local times are refused.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errMissingRequestAt
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errBadRequestAt
}
