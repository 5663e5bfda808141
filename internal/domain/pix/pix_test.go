package pix_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine/checkout-gateway/internal/domain/pix"
)

const samplePayload = "00020126380014br.gov.bcb.pix0116loja@example.com" +
	"520400005303986540510.505802BR5906COMPRA6011JOAO PESSOA62070503ABC63047737"

func TestChecksum_CheckValue(t *testing.T) {
	assert.Equal(t, uint16(0x29B1), pix.Checksum([]byte("123456789")))
	assert.Equal(t, "29B1", pix.FormatChecksum(pix.Checksum([]byte("123456789"))))
}

func TestChecksum_EmptyInputKeepsInitialRegister(t *testing.T) {
	assert.Equal(t, "FFFF", pix.FormatChecksum(pix.Checksum(nil)))
}

func TestFormatChecksum_ZeroPadded(t *testing.T) {
	assert.Equal(t, "000A", pix.FormatChecksum(0x0A))
	assert.Equal(t, "0000", pix.FormatChecksum(0))
}

func TestEncodeField_LengthPrefix(t *testing.T) {
	tests := []struct {
		name   string
		length int
		prefix string
	}{
		{"empty", 0, "00"},
		{"single digit", 9, "09"},
		{"two digits", 10, "10"},
		{"max", 99, "99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := strings.Repeat("x", tt.length)
			got, err := pix.EncodeField("05", value)
			require.NoError(t, err)
			assert.Equal(t, "05"+tt.prefix+value, got)
		})
	}
}

func TestEncodeField_ValueTooLong(t *testing.T) {
	_, err := pix.EncodeField("05", strings.Repeat("x", 100))
	require.ErrorIs(t, err, pix.ErrValueTooLong)
}

func TestEncodeField_CountsBytesNotRunes(t *testing.T) {
	got, err := pix.EncodeField("60", "SÃO")
	require.NoError(t, err)
	assert.Equal(t, "6004SÃO", got)

	_, err = pix.EncodeField("60", strings.Repeat("Ã", 50))
	require.ErrorIs(t, err, pix.ErrValueTooLong)
}

func TestEncodeField_InvalidTag(t *testing.T) {
	for _, tag := range []string{"", "1", "123", "a1"} {
		_, err := pix.EncodeField(tag, "v")
		assert.ErrorIs(t, err, pix.ErrInvalidTag, tag)
	}
}

func TestMerchantAccountInfo(t *testing.T) {
	got, err := pix.MerchantAccountInfo("loja@example.com")
	require.NoError(t, err)
	assert.Equal(t, "26380014br.gov.bcb.pix0116loja@example.com", got)
}

func TestMerchantAccountInfo_KeyTooLongForEnvelope(t *testing.T) {
	assert.Equal(t, 77, pix.MaxInstrumentKeyLength)

	_, err := pix.MerchantAccountInfo(strings.Repeat("k", pix.MaxInstrumentKeyLength))
	require.NoError(t, err)

	_, err = pix.MerchantAccountInfo(strings.Repeat("k", pix.MaxInstrumentKeyLength+1))
	require.ErrorIs(t, err, pix.ErrValueTooLong)
}

func TestBuild_KnownPayloads(t *testing.T) {
	tests := []struct {
		name string
		req  pix.Request
		want string
	}{
		{
			name: "email key",
			req:  pix.Request{InstrumentKey: "loja@example.com", Amount: "10.50"},
			want: samplePayload,
		},
		{
			name: "zero amount still carries field 54",
			req:  pix.Request{InstrumentKey: "loja@example.com", Amount: "0.00"},
			want: "00020126380014br.gov.bcb.pix0116loja@example.com" +
				"52040000530398654040.005802BR5906COMPRA6011JOAO PESSOA62070503ABC6304EFC9",
		},
		{
			name: "phone key with reference id",
			req:  pix.Request{InstrumentKey: "+5583999990000", Amount: "129.90", ReferenceID: "PEDIDO42"},
			want: "00020126360014br.gov.bcb.pix0114+5583999990000" +
				"5204000053039865406129.905802BR5906COMPRA6011JOAO PESSOA62120508PEDIDO426304BA05",
		},
		{
			name: "merchant name and city truncated",
			req: pix.Request{
				InstrumentKey: "loja@example.com",
				Amount:        "10.50",
				MerchantName:  "MERCADO CENTRAL DO NORDESTE LTDA",
				MerchantCity:  "CAMPINA GRANDE DO SUL",
			},
			want: "00020126380014br.gov.bcb.pix0116loja@example.com" +
				"520400005303986540510.505802BR5925MERCADO CENTRAL DO NORDES6015CAMPINA GRANDE 62070503ABC63049E51",
		},
		{
			name: "multibyte city",
			req: pix.Request{
				InstrumentKey: "loja@example.com",
				Amount:        "10.50",
				MerchantName:  "LOJA",
				MerchantCity:  "SÃO PAULO",
			},
			want: "00020126380014br.gov.bcb.pix0116loja@example.com" +
				"520400005303986540510.505802BR5904LOJA6010SÃO PAULO62070503ABC63042E6A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pix.Build(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_TrimsKeyAndReferenceID(t *testing.T) {
	got, err := pix.Build(pix.Request{InstrumentKey: "  loja@example.com ", Amount: "10.50", ReferenceID: "   "})
	require.NoError(t, err)
	assert.Equal(t, samplePayload, got)
}

func TestBuild_Idempotent(t *testing.T) {
	req := pix.Request{InstrumentKey: "loja@example.com", Amount: "42.00", ReferenceID: "X1"}
	first, err := pix.Build(req)
	require.NoError(t, err)
	second, err := pix.Build(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuild_MissingInstrumentKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		got, err := pix.Build(pix.Request{InstrumentKey: key, Amount: "1.00"})
		require.ErrorIs(t, err, pix.ErrMissingInstrumentKey)
		assert.Empty(t, got)
	}
}

func TestBuild_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"", "10", "10.5", "10.500", "-1.00", "1e2", "abc", "010.50"} {
		_, err := pix.Build(pix.Request{InstrumentKey: "k", Amount: amount})
		assert.ErrorIs(t, err, pix.ErrInvalidAmount, amount)
	}
}

func TestBuild_ReferenceIDTooLong(t *testing.T) {
	_, err := pix.Build(pix.Request{InstrumentKey: "k", Amount: "1.00", ReferenceID: strings.Repeat("R", 100)})
	require.ErrorIs(t, err, pix.ErrValueTooLong)
}

func TestBuilder_UsesConfiguredMerchant(t *testing.T) {
	b := pix.NewBuilder("LOJA", "SÃO PAULO")
	got, err := b.Build(pix.Request{InstrumentKey: "loja@example.com", Amount: "10.50"})
	require.NoError(t, err)

	p, err := pix.Decode(got)
	require.NoError(t, err)
	assert.Equal(t, "LOJA", p.MerchantName)
	assert.Equal(t, "SÃO PAULO", p.MerchantCity)
}

func TestDecode_RoundTrip(t *testing.T) {
	req := pix.Request{InstrumentKey: "123e4567-e89b-12d3-a456-426614174000", Amount: "1999.99", ReferenceID: "ORDER2024"}
	payload, err := pix.Build(req)
	require.NoError(t, err)

	p, err := pix.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, req.InstrumentKey, p.InstrumentKey)
	assert.Equal(t, req.Amount, p.Amount)
	assert.Equal(t, req.ReferenceID, p.ReferenceID)
	assert.Equal(t, pix.DefaultMerchantName, p.MerchantName)
	assert.Equal(t, pix.DefaultMerchantCity, p.MerchantCity)
	assert.Equal(t, payload[len(payload)-4:], p.Checksum)
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	tampered := strings.Replace(samplePayload, "10.50", "99.50", 1)
	_, err := pix.Decode(tampered)
	require.ErrorIs(t, err, pix.ErrChecksumMismatch)
}

func TestDecode_Malformed(t *testing.T) {
	for _, s := range []string{"", "000201", samplePayload[:len(samplePayload)-8] + "9999ABCD"} {
		_, err := pix.Decode(s)
		assert.ErrorIs(t, err, pix.ErrMalformedPayload, s)
	}
}

func TestParse_TopLevelFields(t *testing.T) {
	fields, err := pix.Parse(samplePayload)
	require.NoError(t, err)

	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		tags = append(tags, f.Tag)
	}
	assert.Equal(t, []string{"00", "26", "52", "53", "54", "58", "59", "60", "62", "63"}, tags)
	assert.Equal(t, "7737", fields[len(fields)-1].Value)
}

func TestParse_Overrun(t *testing.T) {
	_, err := pix.Parse("0005AB")
	require.ErrorIs(t, err, pix.ErrMalformedPayload)
}

func TestFormatAmount(t *testing.T) {
	got, err := pix.FormatAmount(decimal.RequireFromString("10.5"))
	require.NoError(t, err)
	assert.Equal(t, "10.50", got)

	got, err = pix.FormatAmount(decimal.RequireFromString("2.005"))
	require.NoError(t, err)
	assert.Equal(t, "2.01", got)

	got, err = pix.FormatAmount(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0.00", got)

	_, err = pix.FormatAmount(decimal.RequireFromString("-0.01"))
	require.ErrorIs(t, err, pix.ErrInvalidAmount)
}
