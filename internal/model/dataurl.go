package model

import (
	"encoding/base64"
	"errors"
	"strings"
)

// DataURI is a decoded "data:<mime>;base64,<payload>" string as produced by
// the front-end's FileReader before submission.
type DataURI struct {
	MIME    string
	Payload string // still base64 encoded
}

var ErrInvalidDataURI = errors.New("invalid data uri")

// ParseDataURI splits a data URI into its MIME type and base64 payload. It
// does not decode the payload; size checks run on the encoded length.
func ParseDataURI(s string) (DataURI, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return DataURI{}, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || payload == "" {
		return DataURI{}, ErrInvalidDataURI
	}
	mime, _, _ := strings.Cut(meta, ";")
	if mime == "" {
		return DataURI{}, ErrInvalidDataURI
	}
	return DataURI{MIME: mime, Payload: payload}, nil
}

// ApproxSize estimates the decoded byte length from the base64 length. The
// 3/4 ratio matches what the form enforces client-side; exact decode is not
// required for the size check.
func (d DataURI) ApproxSize() int64 {
	return int64(len(d.Payload)) * 3 / 4
}

// Decode returns the raw document bytes.
func (d DataURI) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Payload)
}
