// internal/upstream/multipart.go
package upstream

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/AbdulAhad210904/Pro-connect/internal/core"
)

// formBuilder accumulates a multipart body, keeping the first write error.
type formBuilder struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newFormBuilder() *formBuilder {
	b := &formBuilder{}
	b.w = multipart.NewWriter(&b.buf)
	return b
}

func (b *formBuilder) field(name, value string) {
	if b.err != nil {
		return
	}
	b.err = b.w.WriteField(name, value)
}

// optional writes the field only when value is non-empty.
func (b *formBuilder) optional(name, value string) {
	if value != "" {
		b.field(name, value)
	}
}

func (b *formBuilder) file(name string, f *core.Attachment) {
	if b.err != nil || f == nil {
		return
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, f.Filename))
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := b.w.CreatePart(h)
	if err != nil {
		b.err = err
		return
	}
	_, b.err = part.Write(f.Data)
}

// finish closes the writer and returns the body and its content type.
func (b *formBuilder) finish() (*bytes.Buffer, string, error) {
	if b.err != nil {
		return nil, "", fmt.Errorf("build multipart body: %w", b.err)
	}
	if err := b.w.Close(); err != nil {
		return nil, "", fmt.Errorf("build multipart body: %w", err)
	}
	return &b.buf, b.w.FormDataContentType(), nil
}
