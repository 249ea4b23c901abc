// Package catalog conta os produtos de uma loja pela API REST do catálogo (WooCommerce ou
// qualquer endpoint que devolva o total num cabeçalho ou num campo JSON).
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

const (
	wooTotalHeader = "X-WP-Total"
	headerPrefix   = "header:"
	maxBodySize    = 4 << 20
)

var (
	ErrCountNotFound = errors.New("total de produtos não encontrado na resposta do catálogo")
	fallbackFields   = []string{"count", "total", "total_count"}
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient     HTTPDoer
	cache          countCache
	defaultCountBy string
}

func NewClient(cfg *config.Config, httpClient HTTPDoer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Catalog.Timeout}
	}

	return &Client{
		httpClient:     httpClient,
		cache:          newCountCache(cfg.Catalog.CacheSizeMB, int(cfg.Catalog.CacheTTL.Seconds())),
		defaultCountBy: cfg.Catalog.DefaultCountBy,
	}
}

// CountProducts consulta o catálogo da loja. O resultado fica em cache pelo TTL configurado.
func (c *Client) CountProducts(ctx context.Context, profile *domain.StoreProfile) (int, error) {
	if !profile.HasCatalog() {
		return 0, fmt.Errorf("loja %s sem URL de catálogo", profile.StoreID)
	}

	url := expandURL(profile.CatalogURL, profile.Domain)
	cacheKey := profile.StoreID + "|" + url

	if count, ok := c.cache.Get(cacheKey); ok {
		return count, nil
	}

	count, err := c.fetchCount(ctx, url, profile)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"store_id": profile.StoreID,
			"error":    err.Error(),
		}).Warn("Falha ao consultar o catálogo")
		return 0, err
	}

	c.cache.Set(cacheKey, count)
	return count, nil
}

func (c *Client) fetchCount(ctx context.Context, url string, profile *domain.StoreProfile) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar a requisição do catálogo: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	switch {
	case profile.CatalogKey != "" && profile.CatalogSecret != "":
		req.SetBasicAuth(profile.CatalogKey, profile.CatalogSecret)
	case profile.CatalogKey != "":
		req.Header.Set("Authorization", "Bearer "+profile.CatalogKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("erro ao chamar o catálogo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("catálogo respondeu %d", resp.StatusCode)
	}

	if header := totalHeader(url, profile.CatalogCountField); header != "" {
		if count, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get(header))); err == nil {
			return count, nil
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, fmt.Errorf("erro ao ler a resposta do catálogo: %w", err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("resposta do catálogo não é JSON: %w", err)
	}

	fields := fallbackFields
	if c.defaultCountBy != "" {
		fields = append([]string{c.defaultCountBy}, fallbackFields...)
	}
	if path := strings.TrimSpace(profile.CatalogCountField); path != "" && !strings.HasPrefix(path, headerPrefix) {
		fields = append([]string{path}, fields...)
	}

	for _, path := range fields {
		if count, ok := lookupCount(payload, path); ok {
			return count, nil
		}
	}

	return 0, ErrCountNotFound
}

// totalHeader escolhe o cabeçalho com o total: "header:<nome>" no campo de contagem ou
// X-WP-Total para endpoints WooCommerce.
func totalHeader(url, countField string) string {
	if name, ok := strings.CutPrefix(strings.TrimSpace(countField), headerPrefix); ok {
		return strings.TrimSpace(name)
	}
	if strings.Contains(strings.ToLower(url), "/wp-json/wc/") {
		return wooTotalHeader
	}
	return ""
}

// expandURL substitui {domain} pelo domínio da loja, com https quando não há esquema.
func expandURL(template, storeDomain string) string {
	if !strings.Contains(template, "{domain}") {
		return template
	}

	d := strings.TrimRight(strings.TrimSpace(storeDomain), "/")
	if d != "" && !strings.HasPrefix(d, "http://") && !strings.HasPrefix(d, "https://") {
		d = "https://" + d
	}
	return strings.ReplaceAll(template, "{domain}", d)
}

// lookupCount segue um caminho com pontos ("data.total") até um número.
func lookupCount(payload any, path string) (int, bool) {
	cur := payload
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return 0, false
		}
		if cur, ok = obj[part]; !ok {
			return 0, false
		}
	}

	switch v := cur.(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}
