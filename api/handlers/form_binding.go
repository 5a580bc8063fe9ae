// api/handlers/form_binding.go
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AbdulAhad210904/Pro-connect/api/models"
	"github.com/AbdulAhad210904/Pro-connect/internal/core"
)

// maxUploadSize caps every uploaded file.
const maxUploadSize = 10 << 20

// listFields are always read as sets, even with a single value.
var listFields = map[string]bool{
	core.FieldProjectInterest: true,
	core.FieldCertificates:    true,
	core.FieldProjectImages:   true,
}

// bindForm reads a multipart or JSON body into a FormState keyed by the
// field names of the validation engine. Nested JSON objects and bracket
// keys ("address[city]") both become dot paths ("address.city").
func bindForm(c *gin.Context) (core.FormState, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return bindMultipartForm(c)
	}
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}
	form := core.FormState{}
	flatten(form, "", raw)
	return form, nil
}

func flatten(form core.FormState, prefix string, raw map[string]any) {
	for key, value := range raw {
		field := fieldName(prefix, key)
		switch v := value.(type) {
		case map[string]any:
			flatten(form, field, v)
		case []any:
			form[field] = stringList(v)
		case nil:
		default:
			form[field] = v
		}
	}
}

func fieldName(prefix, key string) string {
	key = strings.TrimSuffix(key, "[]")
	key = strings.ReplaceAll(strings.ReplaceAll(key, "[", "."), "]", "")
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func stringList(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func bindMultipartForm(c *gin.Context) (core.FormState, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}

	form := core.FormState{}
	for key, values := range mf.Value {
		field := fieldName("", key)
		switch {
		case listFields[field]:
			form[field] = multiValue(values)
		case len(values) > 1:
			form[field] = values
		case len(values) == 1:
			form[field] = values[0]
		}
	}
	for key, headers := range mf.File {
		field := fieldName("", key)
		files := make([]*core.Attachment, 0, len(headers))
		for _, fh := range headers {
			a, err := readAttachment(fh)
			if err != nil {
				return nil, err
			}
			files = append(files, a)
		}
		if listFields[field] || len(files) > 1 {
			form[field] = files
		} else if len(files) == 1 {
			form[field] = files[0]
		}
	}
	return form, nil
}

// multiValue accepts repeated fields as well as one JSON encoded array.
func multiValue(values []string) []string {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			return decoded
		}
	}
	return values
}

func readAttachment(fh *multipart.FileHeader) (*core.Attachment, error) {
	if fh.Size > maxUploadSize {
		return nil, fmt.Errorf("%w: file %s exceeds %d MB", models.ErrBadRequest, fh.Filename, maxUploadSize>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	if len(data) > maxUploadSize {
		return nil, fmt.Errorf("%w: file %s exceeds %d MB", models.ErrBadRequest, fh.Filename, maxUploadSize>>20)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &core.Attachment{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}
