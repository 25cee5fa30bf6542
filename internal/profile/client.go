// Package profile resolves a player name to the skin sheet it wears, using
// the public profile and session services, and loads sheets for compositing.
package profile

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"termfolio/internal/skin"
)

var (
	// ErrNotFound is returned when no player has the requested name.
	ErrNotFound = errors.New("profile: player not found")
	// ErrNoSkin is returned when a profile carries no skin texture.
	ErrNoSkin = errors.New("profile: no skin texture")
)

// SkinCache remembers resolved skins between lookups.
type SkinCache interface {
	CachedSkin(ctx context.Context, name string, maxAge time.Duration) (skin.Source, bool, error)
	SaveSkin(ctx context.Context, name, uuid string, src skin.Source) error
}

// Client resolves player names to skin sources.
type Client struct {
	http        *http.Client
	apiBase     string
	sessionBase string
	cache       SkinCache
	cacheTTL    time.Duration
	fallback    skin.Source
	log         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for lookups.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithAPIBase sets the base URL of the name-to-UUID service.
func WithAPIBase(base string) Option {
	return func(c *Client) { c.apiBase = strings.TrimRight(base, "/") }
}

// WithSessionBase sets the base URL of the session profile service.
func WithSessionBase(base string) Option {
	return func(c *Client) { c.sessionBase = strings.TrimRight(base, "/") }
}

// WithCache stores successful lookups in cache for ttl.
func WithCache(cache SkinCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithFallback sets the sheet URL returned when a lookup fails.
func WithFallback(u string) Option {
	return func(c *Client) { c.fallback = skin.Source{URL: u, Variant: skin.Normal} }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.log = l } }

// NewClient builds a Client pointed at the public services.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:        &http.Client{Timeout: 5 * time.Second},
		apiBase:     "https://api.mojang.com",
		sessionBase: "https://sessionserver.mojang.com",
		fallback:    skin.Source{URL: "steve.png", Variant: skin.Normal},
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Fallback returns the source used when a lookup fails.
func (c *Client) Fallback() skin.Source {
	return c.fallback
}

// Resolve returns the skin source for name. Every failure, including an
// unknown player, yields the fallback source.
func (c *Client) Resolve(ctx context.Context, name string) skin.Source {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.fallback
	}

	if c.cache != nil {
		src, ok, err := c.cache.CachedSkin(ctx, name, c.cacheTTL)
		if err != nil {
			c.log.Warn("skin cache read failed", "name", name, "error", err)
		} else if ok {
			return src
		}
	}

	uuid, src, err := c.Lookup(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.log.Debug("player not found", "name", name)
		} else {
			c.log.Warn("skin lookup failed", "name", name, "error", err)
		}
		return c.fallback
	}

	if c.cache != nil {
		if err := c.cache.SaveSkin(ctx, name, uuid, src); err != nil {
			c.log.Warn("skin cache write failed", "name", name, "error", err)
		}
	}
	return src
}

// Lookup performs the two-step lookup for name and returns the player's
// UUID and skin.
func (c *Client) Lookup(ctx context.Context, name string) (string, skin.Source, error) {
	uuid, err := c.lookupUUID(ctx, name)
	if err != nil {
		return "", skin.Source{}, err
	}
	src, err := c.lookupTextures(ctx, uuid)
	if err != nil {
		return uuid, skin.Source{}, err
	}
	return uuid, src, nil
}

type profileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ErrorMessage string `json:"errorMessage"`
}

func (c *Client) lookupUUID(ctx context.Context, name string) (string, error) {
	endpoint := c.apiBase + "/users/profiles/minecraft/" + url.PathEscape(name)

	var resp profileResponse
	status, err := c.getJSON(ctx, endpoint, &resp)
	if status == http.StatusNoContent || status == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("lookup uuid for %s: %w", name, err)
	}
	if resp.ErrorMessage != "" || resp.ID == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return resp.ID, nil
}

type sessionResponse struct {
	ID         string `json:"id"`
	Properties []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"properties"`
}

func (c *Client) lookupTextures(ctx context.Context, uuid string) (skin.Source, error) {
	endpoint := c.sessionBase + "/session/minecraft/profile/" + url.PathEscape(uuid)

	var resp sessionResponse
	if _, err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return skin.Source{}, fmt.Errorf("lookup session profile %s: %w", uuid, err)
	}

	for _, p := range resp.Properties {
		if p.Name == "textures" {
			return DecodeTextures(p.Value)
		}
	}
	return skin.Source{}, ErrNoSkin
}

type texturesPayload struct {
	Textures struct {
		Skin *struct {
			URL      string `json:"url"`
			Metadata *struct {
				Model string `json:"model"`
			} `json:"metadata"`
		} `json:"SKIN"`
	} `json:"textures"`
}

// DecodeTextures decodes the base64 "textures" property of a session
// profile into a skin source.
func DecodeTextures(value string) (skin.Source, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return skin.Source{}, fmt.Errorf("decode textures: %w", err)
	}

	var payload texturesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return skin.Source{}, fmt.Errorf("parse textures: %w", err)
	}

	s := payload.Textures.Skin
	if s == nil || s.URL == "" {
		return skin.Source{}, ErrNoSkin
	}
	src := skin.Source{URL: s.URL, Variant: skin.Normal}
	if s.Metadata != nil {
		src.Variant = skin.ParseVariant(s.Metadata.Model)
	}
	return src, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
