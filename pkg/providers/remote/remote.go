// Package remote implements a model provider that fetches its model document
// over HTTP. Providers created by one factory share the factory's transport,
// rate limiter and response cache; the decoded model itself is produced fresh
// on every call.
package remote

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	rhttp "github.com/cecil-the-coder/razorpad-kit/internal/http"
	"github.com/cecil-the-coder/razorpad-kit/pkg/logging"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/jsonmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/xmlmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/yamlmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// RequestIDHeader carries a fresh id on every fetch.
const RequestIDHeader = "X-Request-ID"

// Config configures a remote model source.
type Config struct {
	URL       string
	Format    types.ProviderType // json, xml or yaml; empty sniffs Content-Type
	Headers   map[string]string
	UserAgent string // empty keeps the client default

	Timeout           time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	RequestsPerMinute int           // 0 disables client-side limiting
	CacheTTL          time.Duration // 0 disables response caching

	BearerToken       string
	ClientCredentials *clientcredentials.Config

	// Transport overrides the base round tripper (tests, proxies).
	Transport http.RoundTripper
}

// Option customizes a RemoteModelProviderFactory.
type Option func(*RemoteModelProviderFactory)

// WithLogger sets the logger used for fetch events.
func WithLogger(l logging.Logger) Option {
	return func(f *RemoteModelProviderFactory) { f.logger = l }
}

// RemoteModelProviderFactory creates remote model providers. It registers
// under the key "remote".
type RemoteModelProviderFactory struct {
	config  Config
	client  *rhttp.Client
	limiter *rate.Limiter
	cache   *gocache.Cache
	logger  logging.Logger
}

type cachedBody struct {
	contentType string
	body        []byte
}

// NewFactory builds the shared transport for cfg.
func NewFactory(cfg Config, opts ...Option) *RemoteModelProviderFactory {
	f := &RemoteModelProviderFactory{
		config: cfg,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = rhttp.NewClient(rhttp.Config{
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		BaseRetryDelay: cfg.RetryDelay,
		Headers:        cfg.Headers,
		UserAgent:      cfg.UserAgent,
		Transport:      authTransport(cfg),
	})

	if cfg.RequestsPerMinute > 0 {
		f.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute)
	}
	if cfg.CacheTTL > 0 {
		f.cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return f
}

func authTransport(cfg Config) http.RoundTripper {
	var ts oauth2.TokenSource
	switch {
	case cfg.ClientCredentials != nil:
		ts = cfg.ClientCredentials.TokenSource(context.Background())
	case cfg.BearerToken != "":
		ts = oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.BearerToken,
			TokenType:   "Bearer",
		})
	default:
		return cfg.Transport
	}
	return &oauth2.Transport{Source: ts, Base: cfg.Transport}
}

// Config returns the factory configuration.
func (f *RemoteModelProviderFactory) Config() Config {
	return f.config
}

// Create implements types.ModelProviderFactory.
func (f *RemoteModelProviderFactory) Create() types.ModelProvider {
	return &ModelProvider{factory: f}
}

// Invalidate drops any cached response.
func (f *RemoteModelProviderFactory) Invalidate() {
	if f.cache != nil {
		f.cache.Flush()
	}
}

// ModelProvider fetches and decodes the remote model document.
type ModelProvider struct {
	factory *RemoteModelProviderFactory
}

// GetModel fetches the model without a deadline.
func (p *ModelProvider) GetModel() (any, error) {
	return p.GetModelContext(context.Background())
}

// GetModelContext fetches the model, honouring ctx for rate limiting and the
// request itself.
func (p *ModelProvider) GetModelContext(ctx context.Context) (any, error) {
	f := p.factory
	url := f.config.URL
	if url == "" {
		return nil, types.NewInvalidArgumentError(types.ProviderTypeRemote, "remote model URL is required")
	}

	if f.cache != nil {
		if v, ok := f.cache.Get(url); ok {
			if cached, ok := v.(cachedBody); ok {
				f.logger.Debug("remote model cache hit", "url", url)
				return decode(f.config.Format, cached.contentType, cached.body)
			}
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, types.NewModelProviderError(types.ProviderTypeRemote, types.ErrCodeRateLimit, "rate limit wait aborted").
				WithOperation("fetch").
				WithOriginalErr(err)
		}
	}

	requestID := uuid.New().String()
	resp, err := f.client.Get(ctx, url, http.Header{RequestIDHeader: {requestID}})
	if err != nil {
		return nil, types.NewNetworkError(types.ProviderTypeRemote, err).WithOperation("fetch")
	}
	f.logger.Debug("fetched remote model",
		"url", url,
		"status", resp.StatusCode,
		"request_id", requestID,
		"retries_total", f.client.RetryCount())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, types.NewModelProviderError(types.ProviderTypeRemote, types.ClassifyHTTPError(resp.StatusCode),
			fmt.Sprintf("fetching %s failed", url)).
			WithOperation("fetch").
			WithStatusCode(resp.StatusCode)
	}

	if f.cache != nil {
		f.cache.SetDefault(url, cachedBody{contentType: resp.ContentType, body: resp.Body})
	}
	return decode(f.config.Format, resp.ContentType, resp.Body)
}

// decode picks the decoder from the configured format, falling back to the
// response media type and finally JSON.
func decode(format types.ProviderType, contentType string, body []byte) (any, error) {
	if format == "" {
		format = FormatFromContentType(contentType)
	}
	switch format {
	case types.ProviderTypeXML:
		return xmlmodel.Decode(body)
	case types.ProviderTypeYAML:
		return yamlmodel.Decode(body)
	case types.ProviderTypeJSON:
		return jsonmodel.Decode(body)
	default:
		return nil, types.NewInvalidArgumentError(types.ProviderTypeRemote, fmt.Sprintf("unsupported model format %q", format))
	}
}

// FormatFromContentType maps a media type to a decoder. Unknown types map to
// JSON.
func FormatFromContentType(contentType string) types.ProviderType {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch {
	case strings.HasSuffix(mediaType, "xml"):
		return types.ProviderTypeXML
	case strings.Contains(mediaType, "yaml"), strings.Contains(mediaType, "yml"):
		return types.ProviderTypeYAML
	default:
		return types.ProviderTypeJSON
	}
}
