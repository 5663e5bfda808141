package pix

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultReferenceID  = "ABC"
	DefaultMerchantName = "COMPRA"
	DefaultMerchantCity = "JOAO PESSOA"

	MaxMerchantNameLength = 25
	MaxMerchantCityLength = 15
	MaxReferenceIDLength  = 25

	// MaxInstrumentKeyLength leaves room for the provider subfield and the
	// key's own header inside the 99-byte merchant account field.
	MaxInstrumentKeyLength = maxFieldLength - (4 + len(ProviderID)) - 4

	formatIndicator = "01"
	categoryCode    = "0000"
	currencyBRL     = "986"
	countryBR       = "BR"

	tagFormatIndicator = "00"
	tagCategoryCode    = "52"
	tagCurrency        = "53"
	tagAmount          = "54"
	tagCountry         = "58"
	tagMerchantName    = "59"
	tagMerchantCity    = "60"
	tagAdditionalData  = "62"
	tagReferenceID     = "05"
	tagChecksum        = "63"

	// checksumTrailer is the checksum tag plus its fixed length; the CRC covers it.
	checksumTrailer = tagChecksum + "04"
)

var ErrMissingInstrumentKey = errors.New("pix instrument key is not configured")

type Request struct {
	InstrumentKey string
	Amount        string
	ReferenceID   string
	MerchantName  string
	MerchantCity  string
}

// Builder assembles payloads for a fixed merchant identity. Request fields
// left empty fall back to the builder's merchant name and city.
type Builder struct {
	merchantName string
	merchantCity string
}

func NewBuilder(merchantName, merchantCity string) *Builder {
	if merchantName == "" {
		merchantName = DefaultMerchantName
	}
	if merchantCity == "" {
		merchantCity = DefaultMerchantCity
	}
	return &Builder{
		merchantName: merchantName,
		merchantCity: merchantCity,
	}
}

var defaultBuilder = NewBuilder("", "")

// Build assembles a payload using the default merchant identity.
func Build(req Request) (string, error) {
	return defaultBuilder.Build(req)
}

// Build returns the complete payload for req, checksum included. The output
// depends only on req and the builder's merchant identity.
func (b *Builder) Build(req Request) (string, error) {
	key := strings.TrimSpace(req.InstrumentKey)
	if key == "" {
		return "", ErrMissingInstrumentKey
	}
	if !validAmount(req.Amount) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
	}

	referenceID := strings.TrimSpace(req.ReferenceID)
	if referenceID == "" {
		referenceID = DefaultReferenceID
	}
	name := req.MerchantName
	if name == "" {
		name = b.merchantName
	}
	city := req.MerchantCity
	if city == "" {
		city = b.merchantCity
	}

	account, err := MerchantAccountInfo(key)
	if err != nil {
		return "", err
	}
	additional, err := EncodeField(tagReferenceID, referenceID)
	if err != nil {
		return "", err
	}

	var w fieldWriter
	w.field(tagFormatIndicator, formatIndicator)
	w.raw(account)
	w.field(tagCategoryCode, categoryCode)
	w.field(tagCurrency, currencyBRL)
	w.field(tagAmount, req.Amount)
	w.field(tagCountry, countryBR)
	w.field(tagMerchantName, truncate(name, MaxMerchantNameLength))
	w.field(tagMerchantCity, truncate(city, MaxMerchantCityLength))
	w.field(tagAdditionalData, additional)
	w.raw(checksumTrailer)
	if w.err != nil {
		return "", w.err
	}

	body := w.sb.String()
	return body + FormatChecksum(Checksum([]byte(body))), nil
}

// fieldWriter accumulates encoded fields and keeps the first error.
type fieldWriter struct {
	sb  strings.Builder
	err error
}

func (w *fieldWriter) field(tag, value string) {
	if w.err != nil {
		return
	}
	s, err := EncodeField(tag, value)
	if err != nil {
		w.err = err
		return
	}
	w.sb.WriteString(s)
}

func (w *fieldWriter) raw(s string) {
	if w.err != nil {
		return
	}
	w.sb.WriteString(s)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
