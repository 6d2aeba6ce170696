package util

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"image"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/nguyenthenguyen/docx"
)

const (
	// MinExtractedTextLength below which a PDF text layer is treated as missing
	MinExtractedTextLength = 50
	binarySampleSize       = 1000
	binaryThreshold        = 0.3
)

var (
	ErrUnsupportedFile = errors.New("unsupported resume file type")
	ErrEmptyText       = errors.New("no text could be extracted from the resume")
)

// SupportedResumeExt reports whether filename has an extension ExtractResumeText handles.
func SupportedResumeExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// ExtractResumeText turns an uploaded resume into plain text. PDFs use the
// embedded text layer and fall back to OCR for scanned documents.
func ExtractResumeText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt":
		if IsBinaryData(data) {
			return "", fmt.Errorf("%w: %s looks binary", ErrUnsupportedFile, filename)
		}
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(filename))
	}
	if err != nil {
		return "", err
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			log.Printf("page %d: text layer unreadable: %v", n+1, err)
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}

	text := strings.TrimSpace(sb.String())
	if len(text) >= MinExtractedTextLength {
		return text, nil
	}

	log.Printf("PDF text layer has %d chars, falling back to OCR", len(text))
	ocrText, err := ocrDocument(doc)
	if err != nil {
		if text != "" {
			return text, nil
		}
		return "", err
	}
	return ocrText, nil
}

// ocrDocument renders every page and runs tesseract over it.
func ocrDocument(doc *fitz.Document) (string, error) {
	if err := checkTesseract(); err != nil {
		return "", fmt.Errorf("tesseract check failed: %w", err)
	}

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
			log.Println(lastErr)
			continue
		}

		pageText, err := ocrImage(img)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			log.Println(lastErr)
			continue
		}
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
		}
		return "", ErrEmptyText
	}
	return result, nil
}

func ocrImage(img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	tmpFile.Close()

	out, err := exec.Command("tesseract", tmpPath, "stdout", "-l", "eng").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract() error {
	out, err := exec.Command("tesseract", "-v").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w", err)
	}
	log.Printf("Tesseract version: %s", strings.Split(string(out), "\n")[0])
	return nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

// IsBinaryData checks whether data looks like a binary document rather than text.
func IsBinaryData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) || bytes.HasPrefix(data, []byte("PK")) {
		return true
	}

	sampleSize := min(binarySampleSize, len(data))
	nonPrintable := 0
	for _, ch := range data[:sampleSize] {
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(sampleSize) > binaryThreshold
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
