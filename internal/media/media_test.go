package media

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, w.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestReadPostImageAcceptsPNG(t *testing.T) {
	body, ctype := newUpload(t, "image", "pic.png", pngBytes(t))
	req := httptest.NewRequest("POST", "/new/", body)
	req.Header.Set("Content-Type", ctype)

	up, err := ReadPostImage(req, "image")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if up == nil || up.format != "png" {
		t.Fatalf("unexpected upload: %+v", up)
	}
}

func TestSaveWritesUnderPosts(t *testing.T) {
	root := t.TempDir()
	up := &Upload{data: pngBytes(t), format: "png"}

	path, err := up.Save(root)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(path, "posts/") || !strings.HasSuffix(path, ".png") {
		t.Fatalf("unexpected stored path %q", path)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(path))); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestReadPostImageRejectsNonImage(t *testing.T) {
	body, ctype := newUpload(t, "image", "notes.txt", []byte("just text, no pixels"))
	req := httptest.NewRequest("POST", "/new/", body)
	req.Header.Set("Content-Type", ctype)

	if _, err := ReadPostImage(req, "image"); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestReadPostImageMissingField(t *testing.T) {
	body, ctype := newUpload(t, "other", "pic.png", pngBytes(t))
	req := httptest.NewRequest("POST", "/new/", body)
	req.Header.Set("Content-Type", ctype)

	up, err := ReadPostImage(req, "image")
	if err != nil || up != nil {
		t.Fatalf("missing field should be a clean no-op, got %+v, %v", up, err)
	}
}

func TestReadPostImagePlainForm(t *testing.T) {
	req := httptest.NewRequest("POST", "/new/", strings.NewReader("text=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	up, err := ReadPostImage(req, "image")
	if err != nil || up != nil {
		t.Fatalf("urlencoded form should be a clean no-op, got %+v, %v", up, err)
	}
}
