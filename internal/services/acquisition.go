package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/speech"
)

// ErrAcquisitionFailed matches every AcquisitionError via errors.Is.
var ErrAcquisitionFailed = errors.New("text acquisition failed")

// AcquisitionError reports why no text could be obtained from a document.
// Reason is safe to show to the candidate.
type AcquisitionError struct {
	Source models.Source
	Reason string
	Err    error
}

func (e *AcquisitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s acquisition failed: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s acquisition failed: %s", e.Source, e.Reason)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

func (e *AcquisitionError) Is(target error) bool {
	return target == ErrAcquisitionFailed
}

// ImageReader extracts text from an image.
type ImageReader interface {
	ReadImageText(ctx context.Context, image []byte, mimeType string) (string, error)
}

type Acquirer interface {
	Acquire(ctx context.Context, src models.Source, data []byte, mimeType string, lang speech.Language) (*models.RawDocument, error)
	AcquireDocument(ctx context.Context, doc *models.Document) (*models.RawDocument, error)
}

type acquirer struct {
	timeout     time.Duration
	ocr         ImageReader
	transcriber speech.Transcriber
}

// NewAcquirer builds an Acquirer. ocr and transcriber may be nil, in which
// case image and voice sources fail with an AcquisitionError. A timeout of
// zero disables the deadline.
func NewAcquirer(timeout time.Duration, ocr ImageReader, transcriber speech.Transcriber) Acquirer {
	return &acquirer{
		timeout:     timeout,
		ocr:         ocr,
		transcriber: transcriber,
	}
}

type acquired struct {
	text string
	err  error
}

// Acquire implements Acquirer.
func (a *acquirer) Acquire(ctx context.Context, src models.Source, data []byte, mimeType string, lang speech.Language) (*models.RawDocument, error) {
	if len(data) == 0 {
		return nil, &AcquisitionError{Source: src, Reason: "document is empty"}
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	done := make(chan acquired, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- acquired{err: fmt.Errorf("panic while reading document: %v", r)}
			}
		}()
		text, err := a.extract(ctx, src, data, mimeType, lang)
		done <- acquired{text: text, err: err}
	}()

	var out acquired
	select {
	case <-ctx.Done():
		return nil, &AcquisitionError{Source: src, Reason: timeoutReason(ctx.Err(), a.timeout), Err: ctx.Err()}
	case out = <-done:
	}

	if out.err != nil {
		var acqErr *AcquisitionError
		if errors.As(out.err, &acqErr) {
			return nil, acqErr
		}
		return nil, &AcquisitionError{Source: src, Reason: reasonFor(src, out.err), Err: out.err}
	}

	text := CleanText(out.text)
	if text == "" {
		return nil, &AcquisitionError{Source: src, Reason: emptyReason(src)}
	}

	return &models.RawDocument{Text: text, Source: src}, nil
}

// AcquireDocument implements Acquirer.
func (a *acquirer) AcquireDocument(ctx context.Context, doc *models.Document) (*models.RawDocument, error) {
	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return nil, &AcquisitionError{Source: doc.Source, Reason: "uploaded file could not be read", Err: err}
	}
	return a.Acquire(ctx, doc.Source, data, doc.MimeType, speech.LookupLanguage(doc.Language))
}

func (a *acquirer) extract(ctx context.Context, src models.Source, data []byte, mimeType string, lang speech.Language) (string, error) {
	switch src {
	case models.SourceText:
		return string(data), nil
	case models.SourcePDF:
		return extractPDFText(data)
	case models.SourceDOCX:
		return extractDocxText(data)
	case models.SourceImage:
		if a.ocr == nil {
			return "", &AcquisitionError{Source: src, Reason: "image text recognition is not configured"}
		}
		return a.ocr.ReadImageText(ctx, data, mimeType)
	case models.SourceVoice:
		if a.transcriber == nil {
			return "", &AcquisitionError{Source: src, Reason: "speech recognition is not configured", Err: speech.ErrNoBackends}
		}
		return a.transcriber.Transcribe(ctx, data, mimeType, lang)
	default:
		return "", &AcquisitionError{Source: src, Reason: fmt.Sprintf("unsupported document type %q", src)}
	}
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		// Unreadable pages are skipped; the rest of the document still counts.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
	xmlEntities      = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := docxParagraphEnd.ReplaceAllStringFunc(doc.Editable().GetContent(), func(tag string) string {
		if strings.HasPrefix(tag, "<w:tab") {
			return " "
		}
		return "\n"
	})
	return xmlEntities.Replace(xmlTag.ReplaceAllString(content, "")), nil
}

// CleanText repairs invalid UTF-8, trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.ToValidUTF8(text, "\uFFFD")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

func timeoutReason(err error, timeout time.Duration) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timed out after %s", timeout)
	}
	return "cancelled"
}

func reasonFor(src models.Source, err error) string {
	switch {
	case errors.Is(err, speech.ErrNoSpeech):
		return "could not understand audio"
	case errors.Is(err, speech.ErrNoAudio):
		return "no audio received"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	}
	switch src {
	case models.SourcePDF:
		return "PDF could not be read"
	case models.SourceDOCX:
		return "Word document could not be read"
	case models.SourceImage:
		return "image text recognition failed"
	case models.SourceVoice:
		return "speech recognition failed"
	default:
		return "document could not be read"
	}
}

func emptyReason(src models.Source) string {
	switch src {
	case models.SourceImage:
		return "no text found in image"
	case models.SourceVoice:
		return "could not understand audio"
	default:
		return "no text content found in document"
	}
}
