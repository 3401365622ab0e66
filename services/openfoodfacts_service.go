package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrProductNotFound means no external database knows the barcode. The lookup
// waterfall maps it to a not_found result rather than an error.
var ErrProductNotFound = errors.New("product not found in external databases")

// ExternalProduct is the metadata an external barcode database returns.
type ExternalProduct struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Ingredients string `json:"ingredients"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`
}

// ProductFetcher resolves a barcode against external product databases.
type ProductFetcher interface {
	FetchByBarcode(barcode string) (*ExternalProduct, error)
}

type OpenFoodFactsService struct {
	client *http.Client
	upcKey string
}

func NewOpenFoodFactsService() *OpenFoodFactsService {
	return &OpenFoodFactsService{
		client: &http.Client{Timeout: 10 * time.Second},
		upcKey: os.Getenv("UPCITEMDB_KEY"),
	}
}

type offProductResponse struct {
	Status  int `json:"status"` // 1 found, 0 not found
	Product struct {
		ProductName    string `json:"product_name"`
		Brands         string `json:"brands"`
		Categories     string `json:"categories"`
		IngredientsTxt string `json:"ingredients_text"`
		ImageURL       string `json:"image_url"`
	} `json:"product"`
}

type upcLookupResponse struct {
	Code  string `json:"code"`
	Items []struct {
		Title       string `json:"title"`
		Brand       string `json:"brand"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Images      []string `json:"images"`
	} `json:"items"`
}

// FetchByBarcode tries Open Food Facts first, then falls back to UPCitemdb.
// Only a clean miss from both yields ErrProductNotFound; transport errors are
// returned as-is so the caller can distinguish "unknown product" from
// "collaborator down".
func (s *OpenFoodFactsService) FetchByBarcode(barcode string) (*ExternalProduct, error) {
	p, err := s.fetchOFF(barcode)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrProductNotFound) {
		return nil, err
	}
	return s.fetchUPCItemDB(barcode)
}

func (s *OpenFoodFactsService) fetchOFF(barcode string) (*ExternalProduct, error) {
	u := fmt.Sprintf("https://world.openfoodfacts.org/api/v2/product/%s.json", barcode)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call Open Food Facts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Open Food Facts response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open food facts API error %d: %s", resp.StatusCode, string(body))
	}

	var pr offProductResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse Open Food Facts JSON: %w", err)
	}
	if pr.Status != 1 || pr.Product.ProductName == "" {
		return nil, ErrProductNotFound
	}

	return &ExternalProduct{
		Barcode:     barcode,
		Name:        pr.Product.ProductName,
		Brand:       firstSegment(pr.Product.Brands),
		Category:    firstSegment(pr.Product.Categories),
		Ingredients: pr.Product.IngredientsTxt,
		ImageURL:    pr.Product.ImageURL,
		Source:      "openfoodfacts",
	}, nil
}

func (s *OpenFoodFactsService) fetchUPCItemDB(barcode string) (*ExternalProduct, error) {
	u := fmt.Sprintf("https://api.upcitemdb.com/prod/trial/lookup?upc=%s", barcode)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create UPCitemdb request: %w", err)
	}
	if s.upcKey != "" {
		req.Header.Set("user_key", s.upcKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call UPCitemdb: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read UPCitemdb response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upcitemdb API error %d: %s", resp.StatusCode, string(body))
	}

	var lr upcLookupResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("failed to parse UPCitemdb JSON: %w", err)
	}
	if len(lr.Items) == 0 {
		return nil, ErrProductNotFound
	}

	item := lr.Items[0]
	out := &ExternalProduct{
		Barcode:  barcode,
		Name:     item.Title,
		Brand:    item.Brand,
		Category: item.Category,
		Source:   "upcitemdb",
	}
	if len(item.Images) > 0 {
		out.ImageURL = item.Images[0]
	}
	return out, nil
}

// e.g. "Gerber, Nestlé" yields "Gerber"
func firstSegment(csv string) string {
	if i := strings.IndexByte(csv, ','); i >= 0 {
		return strings.TrimSpace(csv[:i])
	}
	return strings.TrimSpace(csv)
}
