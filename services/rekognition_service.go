package services

import (
	"context"
	"os"
	"strings"

	"safebaby/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// PhotoExtraction is whatever could be read off a product photo: the barcode
// digits if visible, name/brand hints, and the ingredient text printed on the
// label.
type PhotoExtraction struct {
	Barcode     string
	ProductName string
	Brand       string
	Ingredients string
	Labels      []string
}

// Recognized reports whether anything at all was read off the photo.
func (e *PhotoExtraction) Recognized() bool {
	return e != nil && (e.Barcode != "" || e.ProductName != "" || e.Brand != "" || len(e.Labels) > 0)
}

// ImageExtractor turns raw image bytes into a PhotoExtraction.
type ImageExtractor interface {
	Extract(image []byte) (*PhotoExtraction, error)
}

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// Extract runs text detection for the barcode digits and label text, and
// label detection for name hints when the printed text gives nothing.
func (r *RekognitionService) Extract(image []byte) (*PhotoExtraction, error) {
	out := &PhotoExtraction{}

	text, err := r.client.DetectText(context.TODO(), &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, d := range text.TextDetections {
		if d.Type != types.TextTypesLine || d.DetectedText == nil {
			continue
		}
		lines = append(lines, *d.DetectedText)
	}
	parseLabelLines(out, lines)

	// Fall back to object labels for a product hint (e.g. "Baby Food",
	// "Puree") when the label text yielded nothing usable.
	if out.ProductName == "" {
		labels, err := r.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
			Image:         &types.Image{Bytes: image},
			MaxLabels:     aws.Int32(5),
			MinConfidence: aws.Float32(75),
		})
		if err == nil {
			for _, l := range labels.Labels {
				if l.Name != nil {
					out.Labels = append(out.Labels, *l.Name)
				}
			}
		}
	}

	return out, nil
}

// parseLabelLines applies the label-reading heuristics: the first digit run
// that normalizes to a valid barcode wins; text after an "INGREDIENTS" marker
// is ingredient text; the first prominent non-numeric line is the name hint
// and the second the brand hint.
func parseLabelLines(out *PhotoExtraction, lines []string) {
	inIngredients := false
	var ingredients []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if out.Barcode == "" && looksNumeric(trimmed) {
			if code, err := utils.NormalizeBarcode(trimmed); err == nil {
				out.Barcode = code
				continue
			}
		}

		upper := strings.ToUpper(trimmed)
		if strings.HasPrefix(upper, "INGREDIENTS") {
			inIngredients = true
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed[len("INGREDIENTS"):], ":"))
			if rest != "" {
				ingredients = append(ingredients, rest)
			}
			continue
		}
		if inIngredients {
			ingredients = append(ingredients, trimmed)
			continue
		}

		if out.ProductName == "" {
			out.ProductName = trimmed
		} else if out.Brand == "" {
			out.Brand = trimmed
		}
	}

	out.Ingredients = strings.Join(ingredients, " ")
}

// looksNumeric guards against mistaking a sentence containing digits for a
// barcode: the line must be mostly digits.
func looksNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits*2 > len(s)
}
