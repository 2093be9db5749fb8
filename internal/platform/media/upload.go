// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

// ErrNoFile is returned by [SaveUpload] when the form has no part named field.
var ErrNoFile = errors.New("media: no file in form field")

// ErrWrongKind is returned by [SaveUpload] when the content does not sniff as the expected kind.
var ErrWrongKind = errors.New("media: unexpected content type")

// sniffLen is how many bytes mimetype inspects by default.
const sniffLen = 3072

/*
SaveUpload spools the multipart part named field into a temp file under dir.

The request must already be parsed with ParseMultipartForm. The first bytes
are sniffed and must match kind (image/* or video/*).

Returns:
  - string: the temp file path (owned by the caller until handed to a [Store])
  - error: [ErrNoFile], [ErrWrongKind], or an I/O failure
*/
func SaveUpload(request *http.Request, field, dir string, kind Kind) (string, error) {
	if request.MultipartForm == nil {
		return "", ErrNoFile
	}

	headers := request.MultipartForm.File[field]
	if len(headers) == 0 || headers[0].Size == 0 {
		return "", ErrNoFile
	}

	part, err := headers[0].Open()
	if err != nil {
		return "", fmt.Errorf("media: open part %s: %w", field, err)
	}
	defer part.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(part, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("media: read part %s: %w", field, err)
	}
	head = head[:n]

	contentType := mimetype.Detect(head).String()
	if !matchesKind(contentType, kind, headers[0].Header.Get("Content-Type")) {
		return "", fmt.Errorf("%w: %s is %s, want %s", ErrWrongKind, field, contentType, kind)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("media: create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(headers[0].Filename))
	temp, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("media: create temp file: %w", err)
	}

	if _, err := io.Copy(temp, io.MultiReader(bytes.NewReader(head), part)); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return "", fmt.Errorf("media: spool %s: %w", field, err)
	}

	if err := temp.Close(); err != nil {
		os.Remove(temp.Name())
		return "", fmt.Errorf("media: close temp file: %w", err)
	}

	return temp.Name(), nil
}

// matchesKind accepts the sniffed type, or the declared one when sniffing is
// inconclusive (a truncated container head sniffs as application/octet-stream).
func matchesKind(sniffed string, kind Kind, declared string) bool {
	prefix := string(kind) + "/"
	if strings.HasPrefix(sniffed, prefix) {
		return true
	}
	return sniffed == "application/octet-stream" && strings.HasPrefix(strings.ToLower(declared), prefix)
}

// # Multipart Forms

// Limits bound multipart uploads.
type Limits struct {
	Dir      string
	MaxBytes int64
}

// formMemory is how much of a form is held in memory before parts spill to disk.
const formMemory = 8 << 20

// ParseForm caps the body at limits.MaxBytes and parses the multipart form.
func ParseForm(writer http.ResponseWriter, request *http.Request, limits Limits) error {
	request.Body = http.MaxBytesReader(writer, request.Body, limits.MaxBytes)
	if err := request.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.ValidationError(fmt.Sprintf("Upload exceeds %d bytes", limits.MaxBytes))
		}
		return apperr.ValidationError("Invalid multipart form")
	}
	return nil
}

// FormFile spools field with [SaveUpload] and maps its errors to VALIDATION_ERROR.
// An absent optional part yields "".
func FormFile(request *http.Request, field string, limits Limits, kind Kind, required bool) (string, error) {
	path, err := SaveUpload(request, field, limits.Dir, kind)
	switch {
	case errors.Is(err, ErrNoFile):
		if required {
			return "", apperr.ValidationError(field+" is required", apperr.FieldError{Field: field, Message: "File is required"})
		}
		return "", nil
	case errors.Is(err, ErrWrongKind):
		return "", apperr.ValidationError(field+" has the wrong type", apperr.FieldError{Field: field, Message: "Must be a " + string(kind) + " file"})
	case err != nil:
		return "", apperr.Internal(err)
	}
	return path, nil
}
