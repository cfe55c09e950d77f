package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"iluminati/company"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 15 * time.Second
	defaultLimit   = 10
	maxQueryLength = 200
	maxBodyBytes   = 10 << 20
	defaultFormat  = "detailed"
)

// Client оркестратор поиска: v2 API с откатом на legacy
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	cache       *Cache
	tokens      TokenStore
	credentials Credentials
	limit       int
	logger      *slog.Logger
	observer    Observer
	normalizer  *company.Normalizer
	stats       *statsRecorder
	now         func() time.Time
}

// ClientConfig конфигурация клиента
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	RateLimit   rate.Limit
	Burst       int
	Limit       int
	Cache       *Cache
	Tokens      TokenStore
	Credentials Credentials
	Logger      *slog.Logger
	Observer    Observer
	HTTPClient  *http.Client
	Normalizer  *company.Normalizer
}

// NewClient создает клиент с разумными значениями по умолчанию
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Inf
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	if config.Limit <= 0 {
		config.Limit = defaultLimit
	}
	if config.Tokens == nil {
		config.Tokens = NewMemoryTokenStore()
	}
	if config.Credentials.Username == "" {
		config.Credentials = DefaultCredentials
	}
	if config.Credentials.FullName == "" {
		config.Credentials.FullName = DefaultCredentials.FullName
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	if config.Normalizer == nil {
		config.Normalizer = company.NewNormalizer()
	}

	return &Client{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		httpClient:  config.HTTPClient,
		limiter:     rate.NewLimiter(config.RateLimit, config.Burst),
		cache:       config.Cache,
		tokens:      config.Tokens,
		credentials: config.Credentials,
		limit:       config.Limit,
		logger:      config.Logger.With("component", "lookup"),
		observer:    config.Observer,
		normalizer:  config.Normalizer,
		stats:       newStatsRecorder(),
		now:         time.Now,
	}
}

// Search ищет компании. Никогда не возвращает ошибку: при полном отказе результат nil.
func (c *Client) Search(ctx context.Context, query string, countries []string) *Result {
	res, _ := c.SearchTrace(ctx, query, countries)
	return res
}

// SearchTrace выполняет поиск и возвращает журнал переходов автомата
func (c *Client) SearchTrace(ctx context.Context, query string, countries []string) (*Result, Trace) {
	return c.search(ctx, query, countries, c.observer)
}

func (c *Client) search(ctx context.Context, query string, countries []string, observer Observer) (*Result, Trace) {
	tr := newTracer(observer, c.now)
	query = sanitizeQuery(query)
	countries = normalizeCountries(countries)

	key := cacheKey(query, countries)
	if c.cache != nil {
		if cached, found := c.cache.Get(key); found {
			tr.to(StateDone, "cache hit")
			hit := *cached
			hit.Path = PathCache
			return &hit, tr.trace
		}
	}

	tr.to(StateAuthenticating, "")
	token := c.authToken(ctx)

	tr.to(StateQueryingV2, "")
	res, err := c.searchV2(ctx, token, query, countries)
	if err == nil {
		tr.to(StateDone, "")
		c.remember(key, res)
		return res, tr.trace
	}
	// Отмененный вызывающим поиск не уходит в legacy
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.logger.Debug("search cancelled", "query", query, "error", ctxErr)
		tr.to(StateFailed, ctxErr.Error())
		return nil, tr.trace
	}
	c.logger.Warn("v2 search failed, falling back to legacy", "query", query, "error", err)

	tr.to(StateQueryingLegacy, err.Error())
	res, err = c.searchLegacy(ctx, query, countries[0])
	if err != nil {
		c.logger.Error("legacy search failed", "query", query, "error", err)
		tr.to(StateFailed, err.Error())
		return nil, tr.trace
	}

	tr.to(StateDone, "")
	c.remember(key, res)
	return res, tr.trace
}

func (c *Client) remember(key string, res *Result) {
	if c.cache != nil {
		c.cache.Set(key, res)
	}
}

// searchV2 POST /api/v2/search
func (c *Client) searchV2(ctx context.Context, token, query string, countries []string) (*Result, error) {
	body, err := json.Marshal(searchRequest{
		Query:          query,
		Countries:      countries,
		IncludeRelated: true,
		RiskThreshold:  0,
		Limit:          c.limit,
		Format:         defaultFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.fetch(req, PathV2)
	if err != nil {
		return nil, err
	}
	return c.toResult(resp, PathV2), nil
}

// searchLegacy GET /api/search?q=&country=&graph=1
func (c *Client) searchLegacy(ctx context.Context, query, country string) (*Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("country", country)
	params.Set("graph", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.fetch(req, PathLegacy)
	if err != nil {
		return nil, err
	}
	return c.toResult(resp, PathLegacy), nil
}

// LookupByICO GET /api/v2/company/{country}/{ico}. Возвращает nil, если компания не найдена или бэкенд недоступен.
func (c *Client) LookupByICO(ctx context.Context, ico, country string) *company.Company {
	ico = company.FormatICO(ico)
	country = company.NormalizeCountry(country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/v2/company/%s/%s", c.baseURL, url.PathEscape(country), url.PathEscape(ico)), nil)
	if err != nil {
		c.logger.Error("failed to create request", "error", err)
		return nil
	}
	if token := c.authToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.fetch(req, PathV2)
	if err != nil {
		c.logger.Warn("company lookup failed", "ico", ico, "country", country, "error", err)
		return nil
	}

	res := c.toResult(resp, PathV2)
	if len(res.Companies) == 0 {
		return nil
	}
	found := res.Companies[0]
	return &found
}

// Stats возвращает статистику обращений к бэкенду по путям
func (c *Client) Stats() map[Path]EndpointStats {
	return c.stats.snapshot()
}

// CacheStats возвращает статистику кэша или nil, если кэш не настроен
func (c *Client) CacheStats() *CacheStats {
	if c.cache == nil {
		return nil
	}
	stats := c.cache.GetStats()
	return &stats
}

// fetch выполняет запрос, ожидая лимитер, и разбирает тело ответа
func (c *Client) fetch(req *http.Request, path Path) (*Response, error) {
	start := c.now()

	resp, err := c.do(req)
	if err != nil {
		if req.Context().Err() == nil {
			c.stats.recordFailure(path, err, c.now())
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		c.stats.recordFailure(path, err, c.now())
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		err = fmt.Errorf("failed to read response: %w", err)
		c.stats.recordFailure(path, err, c.now())
		return nil, err
	}

	parsed, err := ParseResponse(body)
	if err != nil {
		c.stats.recordFailure(path, err, c.now())
		return nil, err
	}

	c.stats.recordSuccess(path, c.now().Sub(start), c.now())
	return parsed, nil
}

// do ждет лимитер и выполняет запрос
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "iluminati-lookup/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// sanitizeQuery обрезает пробелы и ограничивает длину запроса
func sanitizeQuery(query string) string {
	query = strings.TrimSpace(query)
	if r := []rune(query); len(r) > maxQueryLength {
		query = string(r[:maxQueryLength])
	}
	return query
}

// normalizeCountries приводит коды стран к верхнему регистру, пустой список дает [SK]
func normalizeCountries(countries []string) []string {
	out := make([]string, 0, len(countries))
	seen := make(map[string]struct{}, len(countries))
	for _, country := range countries {
		if strings.TrimSpace(country) == "" {
			continue
		}
		code := company.NormalizeCountry(country)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	if len(out) == 0 {
		out = append(out, company.DefaultCountry)
	}
	return out
}
