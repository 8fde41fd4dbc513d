// Package auth is the HTTP client for the backend's auth namespace.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/evaluapro/desempeno-cli/internal/entity"
	"github.com/evaluapro/desempeno-cli/pkg/config"
)

const defaultRetryWaitMax = time.Second * 5

type Client struct {
	// plain for POSTs (never retried); retrying for idempotent GETs.
	plain    *http.Client
	retrying *http.Client
	baseURL  string
}

// NewClient builds the client on top of the given transport, which is
// where the Authorization header gets attached.
func NewClient(cfg config.Config, transport http.RoundTripper) *Client {
	if transport == nil {
		transport = http.DefaultTransport
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.HTTPRetryAttempts
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.HTTPTimeout
	retryClient.HTTPClient.Transport = transport
	retryClient.Logger = nil

	// Retry only transport-level failures; an HTTP response, whatever
	// its status, is final.
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}

		return false, nil
	}

	return &Client{
		plain: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: transport,
		},
		retrying: retryClient.StandardClient(),
		baseURL:  cfg.APIURL + "/auth",
	}
}

type LoginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	IDUsuario   int    `json:"id_usuario"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	Correo      string `json:"correo"`
	Rol         string `json:"rol,omitempty"`
	NombreRol   string `json:"nombre_rol,omitempty"`
	IDRol       int    `json:"id_rol,omitempty"`
}

type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IDRol    int    `json:"id_rol,omitempty"`
	Area     string `json:"area,omitempty"`
	Cargo    string `json:"cargo,omitempty"`
}

type CurrentUserResponse struct {
	IDUsuario int        `json:"id_usuario"`
	Nombre    string     `json:"nombre"`
	Apellido  string     `json:"apellido"`
	Correo    string     `json:"correo"`
	Email     string     `json:"email,omitempty"`
	Area      string     `json:"area,omitempty"`
	Cargo     string     `json:"cargo,omitempty"`
	IDRol     int        `json:"id_rol"`
	Rol       *RolDetail `json:"rol,omitempty"`
	NombreRol string     `json:"nombre_rol,omitempty"`
}

type RolDetail struct {
	IDRol       int    `json:"id_rol"`
	NombreRol   string `json:"nombre_rol"`
	Descripcion string `json:"descripcion,omitempty"`
}

type errorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, correo, password string) (*LoginResponse, error) {
	var resp LoginResponse

	err := c.post(ctx, "/login", LoginRequest{Correo: correo, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/logout", struct{}{}, nil)
}

func (c *Client) Me(ctx context.Context) (*CurrentUserResponse, error) {
	var resp CurrentUserResponse

	err := c.get(ctx, "/me", &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.post(ctx, "/register", req, nil)
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.post(ctx, "/change-password", map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}, nil)
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "/request-password-reset", map[string]string{"email": email}, nil)
}

// VerifyResetToken checks a 6-digit reset code against the backend. The
// caller keeps the code across the reset steps.
func (c *Client) VerifyResetToken(ctx context.Context, email, codigo string) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}

	err := c.post(ctx, "/verify-reset-token", map[string]string{
		"email":  email,
		"codigo": codigo,
	}, &resp)
	if err != nil {
		return false, err
	}

	return resp.Valid, nil
}

func (c *Client) ResetPassword(ctx context.Context, email, codigo, newPassword string) error {
	return c.post(ctx, "/reset-password", map[string]string{
		"email":          email,
		"codigo":         codigo,
		"nueva_password": newPassword,
	}, nil)
}

func (c *Client) ConfirmarCorreo(ctx context.Context, token string) error {
	return c.get(ctx, "/confirmar-correo/"+url.PathEscape(token), nil)
}

func (c *Client) ReenviarConfirmacion(ctx context.Context, email string) error {
	return c.post(ctx, "/reenviar-confirmacion", map[string]string{"email": email}, nil)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(c.plain, req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.do(c.retrying, req, out)
}

func (c *Client) do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "connection refused") {
			return fmt.Errorf("%w: %s", entity.ErrBackendUnavailable, err)
		}

		return fmt.Errorf("send request: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseAPIError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// parseAPIError keeps the backend's structured detail verbatim; the
// status maps to a sentinel through APIError.Unwrap.
func parseAPIError(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &entity.APIError{Status: statusCode}
	}

	detail := errResp.Detail
	if detail == "" {
		detail = errResp.Message
	}

	return &entity.APIError{Status: statusCode, Detail: detail}
}
