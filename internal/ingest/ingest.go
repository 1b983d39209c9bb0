// Package ingest converts an uploaded file or a raw text field into a
// single analyzable text payload.
package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/errors"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
)

// Input is a single request's document source. Exactly one of File and
// Text is expected to carry content.
type Input struct {
	File     io.Reader
	Filename string
	Text     string
}

// Document normalizes the input to one trimmed text payload. It fails
// with a validation error when neither source is present or the result
// is empty, and with a document read error when a supplied file cannot
// be parsed.
func Document(ctx context.Context, input Input) (string, *errors.APIError) {
	var text string

	switch {
	case input.File != nil:
		extracted, err := fromUpload(ctx, input.File, input.Filename)
		if err != nil {
			return "", err
		}
		text = extracted
	case strings.TrimSpace(input.Text) != "":
		text = input.Text
	default:
		return "", errors.NewValidationError("Proporcione archivo o texto")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.NewValidationError("Documento vacío")
	}

	return text, nil
}

// fromUpload persists the upload to a scoped temporary file and extracts
// its text based on the filename extension.
func fromUpload(ctx context.Context, file io.Reader, filename string) (string, *errors.APIError) {
	path, cleanup, err := saveUpload(file, filename)
	if err != nil {
		logger.Error(ctx, "Failed to persist upload", err,
			"component", "Ingestor",
			"stage", "FileProcessing",
			"filename", filename,
		)
		return "", errors.NewInternalError("Failed to process uploaded file")
	}
	defer cleanup()

	ext := strings.ToLower(filepath.Ext(filename))

	logger.Debug(ctx, "Processing uploaded document",
		"component", "Ingestor",
		"stage", "FileProcessing",
		"filename", filename,
		"extension", ext,
	)

	switch ext {
	case ".pdf":
		text, pdfErr := extractPDFText(path)
		if pdfErr != nil {
			logger.Warn(ctx, "PDF extraction failed",
				"component", "Ingestor",
				"stage", "ProcessingFailed",
				"filename", filename,
				"error", pdfErr,
			)
			return "", errors.NewDocumentReadError("Error PDF: " + pdfErr.Error())
		}
		return text, nil
	default:
		// txt/doc/docx and anything else: best-effort UTF-8 decode with
		// invalid bytes dropped rather than failing
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", errors.NewInternalError("Failed to read uploaded file")
		}
		return strings.ToValidUTF8(string(raw), ""), nil
	}
}
