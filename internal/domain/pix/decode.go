package pix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedPayload = errors.New("malformed pix payload")
	ErrChecksumMismatch = errors.New("pix payload checksum mismatch")
)

// Payload is the decoded content of a merchant-presented payload.
type Payload struct {
	InstrumentKey string
	Amount        string
	ReferenceID   string
	MerchantName  string
	MerchantCity  string
	Checksum      string
}

// Parse splits s into its top-level tag-length-value fields.
func Parse(s string) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(s); {
		if len(s)-i < 4 {
			return nil, fmt.Errorf("%w: truncated header at offset %d", ErrMalformedPayload, i)
		}
		tag := s[i : i+2]
		if !isTag(tag) || !isDigit(s[i+2]) || !isDigit(s[i+3]) {
			return nil, fmt.Errorf("%w: bad header %q at offset %d", ErrMalformedPayload, s[i:i+4], i)
		}
		n, _ := strconv.Atoi(s[i+2 : i+4])
		start := i + 4
		if start+n > len(s) {
			return nil, fmt.Errorf("%w: field %s overruns payload", ErrMalformedPayload, tag)
		}
		fields = append(fields, Field{Tag: tag, Value: s[start : start+n]})
		i = start + n
	}
	return fields, nil
}

// Decode verifies the trailing checksum of s and extracts the fields the
// builder writes.
func Decode(s string) (*Payload, error) {
	if len(s) < len(checksumTrailer)+4 {
		return nil, fmt.Errorf("%w: too short", ErrMalformedPayload)
	}
	trailerAt := len(s) - len(checksumTrailer) - 4
	if s[trailerAt:trailerAt+len(checksumTrailer)] != checksumTrailer {
		return nil, fmt.Errorf("%w: missing checksum field", ErrMalformedPayload)
	}
	body, sum := s[:len(s)-4], s[len(s)-4:]
	if want := FormatChecksum(Checksum([]byte(body))); !strings.EqualFold(want, sum) {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, sum, want)
	}

	fields, err := Parse(s)
	if err != nil {
		return nil, err
	}

	p := &Payload{Checksum: strings.ToUpper(sum)}
	for _, f := range fields {
		switch f.Tag {
		case tagFormatIndicator:
			if f.Value != formatIndicator {
				return nil, fmt.Errorf("%w: unsupported format indicator %q", ErrMalformedPayload, f.Value)
			}
		case tagMerchantAccount:
			key, err := decodeMerchantAccount(f.Value)
			if err != nil {
				return nil, err
			}
			p.InstrumentKey = key
		case tagAmount:
			p.Amount = f.Value
		case tagMerchantName:
			p.MerchantName = f.Value
		case tagMerchantCity:
			p.MerchantCity = f.Value
		case tagAdditionalData:
			p.ReferenceID = subfield(f.Value, tagReferenceID)
		}
	}
	if p.InstrumentKey == "" {
		return nil, fmt.Errorf("%w: no instrument key", ErrMalformedPayload)
	}
	return p, nil
}

func decodeMerchantAccount(value string) (string, error) {
	inner, err := Parse(value)
	if err != nil {
		return "", err
	}
	var provider, key string
	for _, f := range inner {
		switch f.Tag {
		case tagProvider:
			provider = f.Value
		case tagInstrumentKey:
			key = f.Value
		}
	}
	if !strings.EqualFold(provider, ProviderID) {
		return "", fmt.Errorf("%w: unknown provider %q", ErrMalformedPayload, provider)
	}
	return key, nil
}

func subfield(value, tag string) string {
	inner, err := Parse(value)
	if err != nil {
		return ""
	}
	for _, f := range inner {
		if f.Tag == tag {
			return f.Value
		}
	}
	return ""
}
