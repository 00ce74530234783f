package turnosapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент REST API turnos-service
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	mu    sync.RWMutex
	token string
}

// NewClient создает новый экземпляр клиента. baseURL уже включает "/api".
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// BaseURL адрес API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken токен сессии для последующих запросов; пустая строка убирает его
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody тело ошибки сервера
type errorBody struct {
	Message             string `json:"message"`
	NegocioNoEncontrado bool   `json:"negocioNoEncontrado"`
	Email               string `json:"email"`
	NombreNegocio       string `json:"nombreNegocio"`
}

// do выполняет JSON запрос. out == nil, если тело ответа не нужно.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: failed to decode response: %v", ErrInvalidResponse, method, path, err)
	}
	return nil
}

// raw выполняет запрос и копирует тело успешного ответа в w
func (c *Client) raw(ctx context.Context, path string, query url.Values, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(http.MethodGet, path, resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%w: GET %s: failed to read body: %v", ErrInvalidResponse, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Error("%s %s: request failed: %v", method, path, err)
		return nil, &UnreachableError{BaseURL: c.baseURL, Err: err}
	}
	return resp, nil
}

func (c *Client) decodeError(method, path string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}

	if body.NegocioNoEncontrado {
		c.log.Warn("%s %s: business %q not found for %s", method, path, body.NombreNegocio, body.Email)
		return &BusinessNotFoundError{Message: body.Message, Email: body.Email, BusinessName: body.NombreNegocio}
	}

	c.log.Warn("%s %s: status %d: %s", method, path, resp.StatusCode, body.Message)
	return &APIError{Status: resp.StatusCode, Message: body.Message}
}

func segment(s string) string {
	return url.PathEscape(s)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
