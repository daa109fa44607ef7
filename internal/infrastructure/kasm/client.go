// Package kasm implements the provisioning client against the KASM
// public API. Every endpoint authenticates with the API key and secret
// in the request body, except credential validation which uses a
// bearer header.
package kasm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"activityservice/internal/domain"
	"activityservice/internal/domain/provision"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	Server       string
	APIKey       string
	APIKeySecret string
	Timeout      time.Duration
}

type Client struct {
	server    string
	apiKey    string
	apiSecret string
	http      *http.Client
	log       *zap.Logger
}

var _ provision.Client = (*Client)(nil)

// New never fails: missing configuration is surfaced per call, before
// any network traffic, so the service can boot without KASM creds.
func New(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		server:    cfg.Server,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APIKeySecret,
		http:      &http.Client{Timeout: timeout},
		log:       log,
	}
}

func (c *Client) checkConfig() error {
	if c.server == "" || c.apiKey == "" || c.apiSecret == "" {
		return domain.ConfigMissing("one or more KASM keys are missing")
	}
	return nil
}

func (c *Client) Authenticate(ctx context.Context) error {
	if err := c.checkConfig(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/api/public/validate_credentials", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("kasm authenticate: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return domain.Upstream("failed to authenticate against kasm", resp.StatusCode)
	}
	return nil
}

func (c *Client) Users(ctx context.Context) ([]provision.User, error) {
	var out struct {
		Users []struct {
			UserID   string `json:"user_id"`
			Username string `json:"username"`
		} `json:"users"`
	}
	if err := c.post(ctx, "/api/public/get_users", nil, &out, "failed to get kasm users"); err != nil {
		return nil, err
	}

	users := make([]provision.User, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, provision.User{ID: u.UserID, Username: u.Username})
	}
	return users, nil
}

func (c *Client) Groups(ctx context.Context) ([]provision.Group, error) {
	var out struct {
		Groups []groupPayload `json:"groups"`
	}
	if err := c.post(ctx, "/api/public/get_groups", nil, &out, "failed to get kasm groups"); err != nil {
		return nil, err
	}
	return mapGroups(out.Groups), nil
}

func (c *Client) UserGroups(ctx context.Context, userID string) ([]provision.Group, error) {
	payload := map[string]any{
		"target_user": map[string]any{"user_id": userID},
	}
	var out struct {
		User struct {
			Groups []groupPayload `json:"groups"`
		} `json:"user"`
	}
	if err := c.post(ctx, "/api/public/get_user", payload, &out, "failed to get kasm user details"); err != nil {
		return nil, err
	}
	return mapGroups(out.User.Groups), nil
}

func (c *Client) CreateUser(ctx context.Context, username, firstName, lastName, password string) error {
	payload := map[string]any{
		"target_user": map[string]any{
			"username":     username,
			"first_name":   firstName,
			"last_name":    lastName,
			"locked":       false,
			"disabled":     false,
			"organization": "All Users",
			"phone":        "123-456-7890",
			"password":     password,
		},
	}
	return c.post(ctx, "/api/public/create_user", payload, nil, "failed to create kasm user")
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	payload := map[string]any{
		"target_user": map[string]any{"user_id": userID},
		"force":       false,
	}
	return c.post(ctx, "/api/public/delete_user", payload, nil, "failed to delete kasm user")
}

func (c *Client) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	payload := map[string]any{
		"target_user":  map[string]any{"user_id": userID},
		"target_group": map[string]any{"group_id": groupID},
	}
	return c.post(ctx, "/api/public/add_user_group", payload, nil, "failed to update kasm user group")
}

func (c *Client) UpdatePassword(ctx context.Context, userID, username, password string) error {
	payload := map[string]any{
		"target_user": map[string]any{
			"user_id":  userID,
			"username": username,
			"password": password,
		},
	}
	return c.post(ctx, "/api/public/update_user", payload, nil, "failed to update kasm user password")
}

// post sends payload plus the API credentials and decodes the answer
// into out when out is non-nil. A non-200 maps to an upstream failure
// carrying failMsg and the KASM status.
func (c *Client) post(ctx context.Context, path string, payload map[string]any, out any, failMsg string) error {
	if err := c.checkConfig(); err != nil {
		return err
	}

	body := map[string]any{
		"api_key":        c.apiKey,
		"api_key_secret": c.apiSecret,
	}
	for k, v := range payload {
		body[k] = v
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("kasm request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return domain.Upstream(failMsg, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode kasm response %s: %w", path, err)
	}
	return nil
}

type groupPayload struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
}

func mapGroups(in []groupPayload) []provision.Group {
	groups := make([]provision.Group, 0, len(in))
	for _, g := range in {
		groups = append(groups, provision.Group{ID: g.GroupID, Name: g.Name})
	}
	return groups
}
