package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// TextFromPDF extracts plain text from an in-memory PDF payload.
// Library used: github.com/ledongthuc/pdf.
func TextFromPDF(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if normalized := normalizeMimeType(mimeType, fileName); normalized != mimePDF {
		return "", fmt.Errorf("unsupported mime type: %s", normalized)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var out strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", pageNum, err)
		}
		out.WriteString(text)
		out.WriteString("\n")
	}

	result := normalizeWhitespace(out.String())
	if result == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return result, nil
}

// TextFromReader reads the payload and extracts its text.
func TextFromReader(ctx context.Context, r io.Reader, mimeType, fileName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	return TextFromPDF(ctx, data, mimeType, fileName)
}

// normalizeMimeType resolves missing or generic mime types from the file
// extension; browsers sometimes upload PDFs as octet-stream.
func normalizeMimeType(mimeType, fileName string) string {
	trimmed := strings.ToLower(strings.TrimSpace(mimeType))
	if trimmed == "" || trimmed == "application/octet-stream" {
		if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
			return mimePDF
		}
	}
	if idx := strings.Index(trimmed, ";"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
