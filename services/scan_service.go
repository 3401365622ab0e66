package services

import (
	"fmt"
	"strings"
	"time"

	"safebaby/logger"
	"safebaby/utils"

	"go.uber.org/zap"
)

// DefaultScanTimeout bounds the whole photo pipeline: extraction plus the
// lookup waterfall behind it.
const DefaultScanTimeout = 30 * time.Second

// ScanResult wraps a lookup result with what the photo itself yielded.
type ScanResult struct {
	Success    bool             `json:"success"`
	Result     *LookupResult    `json:"result,omitempty"`
	Recognized *PhotoExtraction `json:"recognized,omitempty"`
	PhotoURL   string           `json:"photo_url,omitempty"`
	Message    string           `json:"message,omitempty"`
	Suggestion string           `json:"suggestion,omitempty"`
}

type ScanService struct {
	extractor ImageExtractor
	lookup    *LookupService
	timeout   time.Duration
	archive   func(base64Data, keyPrefix string) (string, error)
}

func NewScanService(extractor ImageExtractor, lookup *LookupService) *ScanService {
	return &ScanService{
		extractor: extractor,
		lookup:    lookup,
		timeout:   DefaultScanTimeout,
		archive:   utils.UploadScanPhoto,
	}
}

// WithTimeout overrides the scan deadline; used by tests.
func (s *ScanService) WithTimeout(d time.Duration) *ScanService {
	s.timeout = d
	return s
}

// WithArchiver swaps the photo archival function; used by tests.
func (s *ScanService) WithArchiver(fn func(string, string) (string, error)) *ScanService {
	s.archive = fn
	return s
}

// ScanPhoto runs extraction and lookup against a fixed timer. On timeout the
// in-flight work is abandoned, not cancelled; a late result is simply
// discarded when the goroutine finishes against a buffered channel.
func (s *ScanService) ScanPhoto(base64Image string) *ScanResult {
	image, _, err := utils.DecodeDataURI(base64Image)
	if err != nil {
		return &ScanResult{
			Success:    false,
			Message:    "That doesn't look like a photo we can read.",
			Suggestion: "Upload a JPEG or PNG of the product label.",
		}
	}

	ch := make(chan *ScanResult, 1)
	go func() {
		ch <- s.scan(image)
	}()

	select {
	case res := <-ch:
		if res.Success && s.archive != nil {
			// Best-effort archival; a failed upload never fails the scan.
			if url, err := s.archive(base64Image, "photo"); err == nil {
				res.PhotoURL = url
			} else {
				logger.Warn("scan photo archival failed", zap.Error(err))
			}
		}
		return res
	case <-time.After(s.timeout):
		logger.Warn("photo scan timed out", zap.Duration("timeout", s.timeout))
		return &ScanResult{
			Success:    false,
			Message:    "The scan took too long and was stopped.",
			Suggestion: "Try again with a sharper, closer photo of the barcode.",
		}
	}
}

func (s *ScanService) scan(image []byte) *ScanResult {
	extraction, err := s.extractor.Extract(image)
	if err != nil {
		logger.Warn("photo extraction failed", zap.Error(err))
		return &ScanResult{
			Success:    false,
			Message:    "We couldn't read anything from that photo.",
			Suggestion: "Make sure the label is well lit and fills the frame.",
		}
	}

	if extraction.Barcode == "" {
		return scanFailure(extraction)
	}

	result := s.lookup.Lookup(extraction.Barcode)

	// Ingredient text read straight off the package is closer to the
	// physical product than what an external database lists, so it wins
	// whenever the result is AI-analyzed.
	if result.Type == LookupAIAnalyzed && extraction.Ingredients != "" && result.Analysis != nil {
		result.Analysis.Ingredients = extraction.Ingredients
	}

	return &ScanResult{
		Success:    true,
		Result:     result,
		Recognized: extraction,
	}
}

// scanFailure shapes the no-barcode outcome: the suggestion names whatever
// was partially recognized so the user can fall back to search.
func scanFailure(extraction *PhotoExtraction) *ScanResult {
	if extraction.Recognized() {
		seen := extraction.ProductName
		if seen == "" {
			seen = extraction.Brand
		}
		if seen == "" {
			seen = strings.Join(extraction.Labels, ", ")
		}
		return &ScanResult{
			Success:    false,
			Recognized: extraction,
			Message:    "We couldn't find a barcode in the photo.",
			Suggestion: fmt.Sprintf("We did recognize %q. Try searching for it by name.", seen),
		}
	}
	return &ScanResult{
		Success:    false,
		Message:    "We couldn't find a barcode in the photo.",
		Suggestion: "Retake the photo with the barcode visible, or search by product name.",
	}
}
