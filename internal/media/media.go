// Package media handles uploaded post images: validation first, the disk
// write as a separate step so callers persist nothing for a rejected form.
package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrNotImage = errors.New("uploaded file is not an image")

// uploads larger than this are rejected outright
const maxImageBytes = 10 << 20

// Upload is a validated image payload that has not been written anywhere yet.
type Upload struct {
	data   []byte
	format string
}

// ReadPostImage reads the named multipart field and verifies it decodes as a
// png/jpeg/gif. It returns nil when the field is absent.
func ReadPostImage(r *http.Request, field string) (*Upload, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	buf, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 || len(buf) > maxImageBytes {
		return nil, ErrNotImage
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, ErrNotImage
	}
	return &Upload{data: buf, format: format}, nil
}

// Save writes the image under root/posts/ and returns the stored relative
// path.
func (u *Upload) Save(root string) (string, error) {
	dir := filepath.Join(root, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + "." + u.format
	if err := os.WriteFile(filepath.Join(dir, name), u.data, 0o644); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join("posts", name)), nil
}
