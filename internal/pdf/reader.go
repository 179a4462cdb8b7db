package pdf

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// ErrNoText is returned when no page of a PDF yields any text.
var ErrNoText = errors.New("no text content could be extracted from PDF")

// Reader handles PDF text extraction
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a reader that refuses files larger than maxFileSize
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ExtractPages returns the plain text of every page in order. Pages that
// cannot be decoded contribute an empty string. The text is NFC-normalized
// so accented labels compare byte for byte.
func (r *Reader) ExtractPages(path string) (pages []string, err error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.Size() > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	// The decoder panics on some malformed streams.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("failed to decode PDF: %v", rec)
		}
	}()

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages = r.extractPageTexts(pdfReader)
	for _, p := range pages {
		if p != "" {
			return pages, nil
		}
	}
	return nil, ErrNoText
}

// extractPageTexts extracts the text of each page, respecting maxTextSize.
func (r *Reader) extractPageTexts(pdfReader *pdf.Reader) []string {
	numPages := pdfReader.NumPage()
	pages := make([]string, 0, numPages)
	totalLength := 0

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			pages = append(pages, "")
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			if cut := truncateUTF8(content, r.maxTextSize-totalLength); cut != "" {
				pages = append(pages, norm.NFC.String(cut))
			}
			break
		}

		pages = append(pages, norm.NFC.String(content))
		totalLength += len(content)
	}

	return pages
}

// truncateUTF8 returns at most limit bytes of s without splitting a
// multi-byte character.
func truncateUTF8(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
