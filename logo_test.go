package qrsvg

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLogoTemplate(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	stream := `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M0.4,0.4 L0.6,0.4 L0.6,0.6 L0.4,0.6 Z"/>
  <image href="data:image/png;base64,` + base64.StdEncoding.EncodeToString(payload) + `"/>
</svg>`

	tpl, err := ReadLogoTemplate(strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, "M0.4,0.4 L0.6,0.4 L0.6,0.6 L0.4,0.6 Z", tpl.MaskPath)
	assert.Equal(t, payload, tpl.Image)
}

func TestReadLogoTemplateWrappedPayload(t *testing.T) {
	// line feeds inside the data URL are tolerated
	stream := `<svg><image href="data:image/png;base64,
aGVs
bG8=
"/></svg>`
	tpl, err := ReadLogoTemplate(strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), tpl.Image)
}

func TestReadLogoTemplateErrors(t *testing.T) {
	_, err := ReadLogoTemplate(strings.NewReader("no markup at all"))
	assert.Error(t, err)

	_, err = ReadLogoTemplate(strings.NewReader(`<svg><image href="https://example.com/x.png"/></svg>`))
	assert.Error(t, err, "remote references are not data URLs")

	_, err = ReadLogoTemplate(strings.NewReader(`<svg><image href="data:image/png;base64,@@@"/></svg>`))
	assert.Error(t, err)
}

func TestDecodeDataURL(t *testing.T) {
	data, err := decodeDataURL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, data)

	_, err = decodeDataURL("image/png;base64,AAAA")
	assert.Error(t, err, "missing data: scheme")
}
