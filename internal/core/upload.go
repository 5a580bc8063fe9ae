// internal/core/upload.go
package core

import (
	"errors"
	"strings"
)

// UploadKind identifies a file slot on a form.
type UploadKind string

const (
	UploadProfilePicture UploadKind = "profile"
	UploadDocument       UploadKind = "document"
	UploadCertificate    UploadKind = "certificates"
	UploadProjectImage   UploadKind = "projectImage"
)

var (
	ErrImageOnly       = errors.New("Alleen afbeeldingsbestanden zijn toegestaan voor profielfoto")
	ErrDocumentType    = errors.New("Alleen PDF en afbeeldingsbestanden zijn toegestaan voor documenten")
	ErrProjectImage    = errors.New("only image files can be attached to a project")
	ErrUnknownUploadTo = errors.New("unknown upload slot")
)

func isImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}

func isPDF(contentType string) bool {
	return strings.EqualFold(contentType, "application/pdf")
}

// CheckUpload accepts or rejects a file for the given slot by its MIME type.
func CheckUpload(kind UploadKind, contentType string) error {
	switch kind {
	case UploadProfilePicture:
		if !isImage(contentType) {
			return ErrImageOnly
		}
	case UploadDocument, UploadCertificate:
		if !isPDF(contentType) && !isImage(contentType) {
			return ErrDocumentType
		}
	case UploadProjectImage:
		if !isImage(contentType) {
			return ErrProjectImage
		}
	default:
		return ErrUnknownUploadTo
	}
	return nil
}

// StageUploads keeps the files accepted for kind and reports how many were
// dropped, mirroring a drop zone that silently filters a mixed selection.
func StageUploads(kind UploadKind, files []*Attachment) (accepted []*Attachment, rejected int) {
	for _, f := range files {
		if f == nil {
			continue
		}
		if CheckUpload(kind, f.ContentType) != nil {
			rejected++
			continue
		}
		accepted = append(accepted, f)
	}
	return accepted, rejected
}
