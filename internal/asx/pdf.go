package asx

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

const termsAction = "/asx/v2/statistics/announcementTerms.do"

var pdfURLFieldRe = regexp.MustCompile(`name="pdfURL"\s+value="(.*?)"`)

// DownloadPDF fetches an announcement document, bypassing the terms and
// conditions interstitial when one is served instead of the PDF.
func DownloadPDF(triggerURL string) ([]byte, error) {
	resp, err := client.Get(triggerURL)
	if err != nil {
		return nil, fmt.Errorf("failed initial GET to %s: %w", triggerURL, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	finalPDFURL := triggerURL
	if body := string(bodyBytes); strings.Contains(body, termsAction) {
		match := pdfURLFieldRe.FindStringSubmatch(body)
		if len(match) < 2 {
			return nil, fmt.Errorf("terms form detected, but no hidden 'pdfURL' field found")
		}
		directPDFURL := match[1]

		// Submit the "Agree and proceed" form to set the session cookie.
		formValues := url.Values{
			"pdfURL":                  {directPDFURL},
			"showAnnouncementPDFForm": {"Agree and proceed"},
		}
		if _, err := client.PostForm(baseURL+termsAction, formValues); err != nil {
			logrus.WithError(err).Warn("terms form submission failed or redirected unexpectedly")
		}
		finalPDFURL = directPDFURL
	} else if resp.StatusCode == http.StatusOK {
		return bodyBytes, nil
	}

	pdfResp, err := client.Get(finalPDFURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download PDF from %s: %w", finalPDFURL, err)
	}
	defer pdfResp.Body.Close()

	if pdfResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download PDF: received status code %d from %s", pdfResp.StatusCode, finalPDFURL)
	}
	return io.ReadAll(pdfResp.Body)
}

// Snippet returns the text surrounding the first occurrence of keyword,
// with newlines flattened. Empty when the keyword is absent.
func Snippet(fullText, keyword string) string {
	const contextSize = 50

	index := strings.Index(strings.ToLower(fullText), strings.ToLower(keyword))
	if index == -1 {
		return ""
	}

	start := index - contextSize
	if start < 0 {
		start = 0
	}
	end := index + len(keyword) + contextSize
	if end > len(fullText) {
		end = len(fullText)
	}

	snippet := fullText[start:end]
	if start > 0 {
		snippet = "... " + snippet
	}
	if end < len(fullText) {
		snippet = snippet + " ..."
	}
	return strings.ReplaceAll(snippet, "\n", " ")
}
