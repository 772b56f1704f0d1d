package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*Client)(nil)

// A Client fetches the catalog from the remote products API. Any
// transport, status or decode failure is reported as a plain fetch
// error; there is no timeout and no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) Client {
	return Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogClient.FetchProducts"

	var ps []Product
	if err := c.getJSON(ctx, "/products", &ps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c.toDomain(ps), nil
}

func (c Client) FetchCategories(ctx context.Context) ([]string, error) {
	const op = "CatalogClient.FetchCategories"

	var cats []string
	if err := c.getJSON(ctx, "/products/categories", &cats); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cats, nil
}

func (c Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+path, nil,
	)
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", res.Status)
	}

	return json.NewDecoder(res.Body).Decode(v)
}

func (c Client) toDomain(ps []Product) (domainPs []domain.Product) {
	for _, p := range ps {
		domainPs = append(domainPs, domain.Product{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Image:       p.Image,
		})
	}
	return domainPs
}
