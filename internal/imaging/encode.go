package imaging

import (
	"encoding/base64"
	"errors"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// ErrEmptyImage is returned when there is nothing to encode.
var ErrEmptyImage = errors.New("image is empty")

// Encode returns the standard base64 encoding of the upload.
func Encode(u *analysis.Upload) (string, error) {
	if u.Empty() {
		return "", ErrEmptyImage
	}
	return base64.StdEncoding.EncodeToString(u.Data), nil
}
