/*
Package pdftext extracts plain text from PDF documents.
*/
package pdftext

import (
	"fmt"
	"os"
	"strings"

	"github.com/pbberlin/pdf"
	"github.com/sirupsen/logrus"
)

const maxPages = 300

// ExtractFile reads back a saved PDF and concatenates the text of all its
// pages. Unreadable pages are skipped; the error is non-nil only when the
// file itself cannot be opened as a PDF.
func ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to read PDF %s: %w", path, err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if i > maxPages {
			logrus.WithField("path", path).Warnf("not reading beyond %d pages", maxPages)
			break
		}
		page := reader.Page(i)
		content, err := pageContent(&page)
		if err != nil {
			logrus.WithError(err).WithField("page", i).Debug("skipping unreadable page")
			continue
		}
		for _, t := range content.Text {
			sb.WriteString(t.S)
		}
	}

	return sb.String(), nil
}

// pageContent wraps Page.Content, which panics on some malformed PDFs.
func pageContent(p *pdf.Page) (cnt *pdf.Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content extraction panicked: %v", r)
		}
	}()
	c := p.Content()
	return &c, nil
}
