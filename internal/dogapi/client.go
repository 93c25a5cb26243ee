// Package dogapi es el cliente HTTP del API público de razas (dog.ceo).
//
// Contrato del upstream:
//
//	GET {base}/breeds/list/all                 -> {"message": {"hound": ["afghan", ...], ...}, "status": "success"}
//	GET {base}/breed/{breed}/images/random/{n} -> {"message": ["https://...", ...], "status": "success"}
//
// Una raza desconocida responde 404. No hay reintentos: una llamada fallida vuelve directo al caller.
package dogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dropDatabas3/breedbox/internal/metrics"
)

const (
	DefaultBaseURL   = "https://dog.ceo/api"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "breedbox/1.0"

	statusSuccess = "success"

	// maxErrorBody acota lo que se guarda del body en HTTPError.
	maxErrorBody = 4 << 10
	// maxBody acota respuestas exitosas; list/all pesa unos pocos KB.
	maxBody = 4 << 20
)

// ErrMalformedResponse indica un 2xx con body que no respeta el contrato.
var ErrMalformedResponse = errors.New("dogapi: malformed response")

// HTTPError captura un status code inesperado y (parte de) su body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("dogapi: unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// IsNotFound reporta si err es un 404 del upstream.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// Options configura el cliente. Todos los campos son opcionales.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Transport base; nil => http.DefaultTransport.
	Transport http.RoundTripper
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New crea el cliente con los defaults aplicados.
func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &userAgentRoundTripper{wrapped: transport, userAgent: ua},
		},
	}
}

// BaseURL retorna la URL base efectiva.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope es la forma común de las respuestas del upstream.
type envelope interface {
	valid() bool
	status() string
}

type listAllResponse struct {
	Message map[string][]string `json:"message"`
	Status  string              `json:"status"`
}

func (r *listAllResponse) valid() bool    { return r.Status == statusSuccess && r.Message != nil }
func (r *listAllResponse) status() string { return r.Status }

type imagesResponse struct {
	Message []string `json:"message"`
	Status  string   `json:"status"`
}

func (r *imagesResponse) valid() bool    { return r.Status == statusSuccess && r.Message != nil }
func (r *imagesResponse) status() string { return r.Status }

// ListAllBreeds retorna el mapa raza -> sub-razas.
func (c *Client) ListAllBreeds(ctx context.Context) (map[string][]string, error) {
	var out listAllResponse
	if err := c.getJSON(ctx, "list_all", "/breeds/list/all", &out); err != nil {
		return nil, err
	}
	return out.Message, nil
}

// RandomImages pide n imágenes aleatorias de breed. breed viaja tal cual (escapado para el path).
func (c *Client) RandomImages(ctx context.Context, breed string, n int) ([]string, error) {
	path := "/breed/" + url.PathEscape(breed) + "/images/random/" + strconv.Itoa(n)

	var out imagesResponse
	if err := c.getJSON(ctx, "random_images", path, &out); err != nil {
		return nil, err
	}
	return out.Message, nil
}

// getJSON hace un GET, exige 2xx y un envelope con status "success". endpoint es solo el label de métricas.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, out envelope) error {
	start := time.Now()
	outcome := "ok"
	defer func() { metrics.RecordUpstream(endpoint, outcome, time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("dogapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("dogapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusNotFound {
			outcome = "not_found"
		} else {
			outcome = "http_error"
		}
		return &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		outcome = "malformed"
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !out.valid() {
		outcome = "malformed"
		return fmt.Errorf("%w: status %q", ErrMalformedResponse, out.status())
	}
	return nil
}

// userAgentRoundTripper agrega User-Agent a cada request saliente.
type userAgentRoundTripper struct {
	wrapped   http.RoundTripper
	userAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// clonar para no mutar el request del caller
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.userAgent)
	return rt.wrapped.RoundTrip(clone)
}
