package notes

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImage(t *testing.T) {
	uri, err := EncodeImage(bytes.NewReader(pngHeader), MaxImageBytes)
	require.NoError(t, err)

	mime, data, ok := strings.Cut(uri, ";base64,")
	require.True(t, ok)
	assert.Equal(t, "data:image/png", mime)

	raw, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, raw)
}

func TestEncodeImage_TextHasNoParams(t *testing.T) {
	uri, err := EncodeImage(strings.NewReader("just text"), 64)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:text/plain;base64,"), uri)
}

func TestEncodeImage_Limit(t *testing.T) {
	_, err := EncodeImage(bytes.NewReader(make([]byte, 11)), 10)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = EncodeImage(bytes.NewReader(make([]byte, 10)), 10)
	assert.NoError(t, err)
}
