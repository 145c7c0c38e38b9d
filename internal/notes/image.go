package notes

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes is the largest image accepted by the multipart upload path.
const MaxImageBytes = 5 << 20

var ErrImageTooLarge = errors.New("image exceeds size limit")

// EncodeImage reads an uploaded image and returns it as a data URI.
// Reads beyond limit bytes fail with ErrImageTooLarge.
func EncodeImage(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > limit {
		return "", ErrImageTooLarge
	}

	mime, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
