// Package dulcedosis es el cliente del API REST remoto de Dulce Dosis.
package dulcedosis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"dulce-dosis-web/internal/domain/accounts"
	"dulce-dosis-web/internal/domain/treatments"
	"dulce-dosis-web/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("dulcedosis client not configured")
	ErrUnauthorized  = errors.New("dulcedosis: missing token")
)

type Config struct {
	// AuthScheme precede al token en Authorization. Vacío => "Token".
	AuthScheme string

	// TreatmentsPath es el recurso de tratamientos. Vacío => "treatments".
	TreatmentsPath string
}

// Client implementa accounts.Registrar, accounts.Authenticator y treatments.Gateway.
type Client struct {
	http           *httpclient.Client
	authScheme     string
	treatmentsPath string
}

func NewClient(hc *httpclient.Client, cfg Config) *Client {
	scheme := strings.TrimSpace(cfg.AuthScheme)
	if scheme == "" {
		scheme = "Token"
	}
	tp := strings.Trim(strings.TrimSpace(cfg.TreatmentsPath), "/")
	if tp == "" {
		tp = "treatments"
	}
	return &Client{http: hc, authScheme: scheme, treatmentsPath: tp}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// Register -> POST auth/register/
func (c *Client) Register(ctx context.Context, in accounts.RegisterRequest) (accounts.AuthResponse, error) {
	if !c.IsConfigured() {
		return accounts.AuthResponse{}, ErrNotConfigured
	}
	var out accounts.AuthResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "auth/register/", nil, in, &out); err != nil {
		return accounts.AuthResponse{}, err
	}
	return out, nil
}

// Login -> POST auth/login/
func (c *Client) Login(ctx context.Context, in accounts.LoginRequest) (accounts.AuthResponse, error) {
	if !c.IsConfigured() {
		return accounts.AuthResponse{}, ErrNotConfigured
	}
	var out accounts.AuthResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "auth/login/", nil, in, &out); err != nil {
		return accounts.AuthResponse{}, err
	}
	return out, nil
}

// List -> GET treatments/. Acepta lista plana o paginada ({"results": [...]}).
func (c *Client) List(ctx context.Context, token string) ([]treatments.Treatment, error) {
	headers, err := c.authHeaders(token)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.http.DoJSON(ctx, http.MethodGet, c.treatmentsPath+"/", headers, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList(raw)
}

// Get -> GET treatments/{id}/
func (c *Client) Get(ctx context.Context, token, id string) (treatments.Treatment, error) {
	headers, err := c.authHeaders(token)
	if err != nil {
		return treatments.Treatment{}, err
	}
	var out treatments.Treatment
	if err := c.http.DoJSON(ctx, http.MethodGet, c.itemPath(id), headers, nil, &out); err != nil {
		return treatments.Treatment{}, err
	}
	return out, nil
}

// Create -> POST treatments/
func (c *Client) Create(ctx context.Context, token string, t treatments.Treatment) (treatments.Treatment, error) {
	headers, err := c.authHeaders(token)
	if err != nil {
		return treatments.Treatment{}, err
	}
	t.ID = ""
	var out treatments.Treatment
	if err := c.http.DoJSON(ctx, http.MethodPost, c.treatmentsPath+"/", headers, t, &out); err != nil {
		return treatments.Treatment{}, err
	}
	return out, nil
}

// Update -> PUT treatments/{id}/
func (c *Client) Update(ctx context.Context, token string, t treatments.Treatment) (treatments.Treatment, error) {
	headers, err := c.authHeaders(token)
	if err != nil {
		return treatments.Treatment{}, err
	}
	var out treatments.Treatment
	if err := c.http.DoJSON(ctx, http.MethodPut, c.itemPath(t.ID.String()), headers, t, &out); err != nil {
		return treatments.Treatment{}, err
	}
	return out, nil
}

// Delete -> DELETE treatments/{id}/. El body de éxito se ignora.
func (c *Client) Delete(ctx context.Context, token, id string) error {
	headers, err := c.authHeaders(token)
	if err != nil {
		return err
	}
	return c.http.DoJSON(ctx, http.MethodDelete, c.itemPath(id), headers, nil, nil)
}

func (c *Client) itemPath(id string) string {
	return fmt.Sprintf("%s/%s/", c.treatmentsPath, url.PathEscape(strings.TrimSpace(id)))
}

func (c *Client) authHeaders(token string) (map[string]string, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}
	return map[string]string{"Authorization": c.authScheme + " " + token}, nil
}

func decodeList(raw json.RawMessage) ([]treatments.Treatment, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []treatments.Treatment{}, nil
	}

	if raw[0] == '[' {
		var items []treatments.Treatment
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("dulcedosis: invalid treatments list: %w", err)
		}
		return items, nil
	}

	var page struct {
		Results []treatments.Treatment `json:"results"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("dulcedosis: invalid treatments page: %w", err)
	}
	if page.Results == nil {
		page.Results = []treatments.Treatment{}
	}
	return page.Results, nil
}
