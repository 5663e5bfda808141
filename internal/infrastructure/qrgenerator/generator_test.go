package qrgenerator_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine/checkout-gateway/internal/infrastructure/qrgenerator"
)

func TestGenerator_Render(t *testing.T) {
	g := qrgenerator.NewGenerator(256)

	out, err := g.Render("00020126380014br.gov.bcb.pix0116loja@example.com" +
		"520400005303986540510.505802BR5906COMPRA6011JOAO PESSOA62070503ABC63047737")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestGenerator_RenderEmpty(t *testing.T) {
	_, err := qrgenerator.NewGenerator(256).Render("")
	require.ErrorIs(t, err, qrgenerator.ErrEmptyPayload)
}
