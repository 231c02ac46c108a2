package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"regportal-backend/internal/shared/storage/object"
)

const mimePDF = "application/pdf"

// ErrUnsupported is returned for documents that carry no extractable text.
var ErrUnsupported = errors.New("unsupported mime type")

// Text pulls plain text from a stored PDF document and persists a derived
// .extracted.txt copy next to it, returning the derived object's key.
func Text(ctx context.Context, store object.ObjectStore, fileKey string, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if normalizeMimeType(mimeType) != mimePDF {
		return "", ErrUnsupported
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", fileKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: read: %w", fileKey, err)
	}

	text, err := extractPDF(raw)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", fileKey, err)
	}

	extractedKey := fileKey + ".extracted.txt"
	if err := saveExtracted(ctx, store, extractedKey, text); err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", fileKey, err)
	}

	return extractedKey, nil
}

type keySaver interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

func saveExtracted(ctx context.Context, store object.ObjectStore, key string, text string) error {
	saver, ok := store.(keySaver)
	if !ok {
		return errors.New("object store does not support SaveWithKey")
	}
	_, err := saver.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text))
	return err
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
