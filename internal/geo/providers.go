package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrLookupFailed = errors.New("geolocation lookup failed")

// Location is what the detection endpoint reports for a caller.
type Location struct {
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
}

// Provider resolves an IP address to a Location. An empty ip means the
// provider should geolocate the address the request arrives from.
type Provider interface {
	Lookup(ctx context.Context, ip string) (Location, error)
	Name() string
}

type ProviderConfig struct {
	Name    string
	BaseURL string
	Timeout time.Duration
}

// maxBodyBytes caps provider responses; the payloads are a few hundred bytes.
const maxBodyBytes = 64 << 10

func getJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "glowshop-geo/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrLookupFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrLookupFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: malformed payload: %v", ErrLookupFailed, err)
	}
	return nil
}

func validCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// IPAPIProvider talks to the ipapi.co JSON API.
type IPAPIProvider struct {
	client  *http.Client
	baseURL string
	name    string
	logger  *slog.Logger
}

func NewIPAPIProvider(config ProviderConfig, logger *slog.Logger) *IPAPIProvider {
	name := config.Name
	if name == "" {
		name = "ipapi.co"
	}
	return &IPAPIProvider{
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		name:    name,
		logger:  logger,
	}
}

type ipapiResponse struct {
	IP          string `json:"ip"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

func (p *IPAPIProvider) Lookup(ctx context.Context, ip string) (Location, error) {
	endpoint := p.baseURL + "/json/"
	if ip != "" {
		endpoint = p.baseURL + "/" + url.PathEscape(ip) + "/json/"
	}

	var resp ipapiResponse
	if err := getJSON(ctx, p.client, endpoint, &resp); err != nil {
		return Location{}, err
	}
	if resp.Error {
		return Location{}, fmt.Errorf("%w: %s", ErrLookupFailed, resp.Reason)
	}
	if !validCountryCode(resp.CountryCode) || resp.CountryName == "" {
		return Location{}, fmt.Errorf("%w: missing country in payload", ErrLookupFailed)
	}
	if p.logger != nil {
		p.logger.DebugContext(ctx, "Geolocation lookup succeeded", slog.String("provider", p.name), slog.String("country_code", resp.CountryCode))
	}
	return Location{
		Country:     resp.CountryName,
		CountryCode: strings.ToUpper(resp.CountryCode),
		City:        resp.City,
		Region:      resp.Region,
	}, nil
}

func (p *IPAPIProvider) Name() string { return p.name }

// IPAPIComProvider talks to the ip-api.com JSON API.
type IPAPIComProvider struct {
	client  *http.Client
	baseURL string
	name    string
	logger  *slog.Logger
}

func NewIPAPIComProvider(config ProviderConfig, logger *slog.Logger) *IPAPIComProvider {
	name := config.Name
	if name == "" {
		name = "ip-api.com"
	}
	return &IPAPIComProvider{
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		name:    name,
		logger:  logger,
	}
}

type ipapiComResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	RegionName  string `json:"regionName"`
}

func (p *IPAPIComProvider) Lookup(ctx context.Context, ip string) (Location, error) {
	endpoint := p.baseURL + "/json/" + url.PathEscape(ip) + "?fields=status,message,country,countryCode,regionName,city"

	var resp ipapiComResponse
	if err := getJSON(ctx, p.client, endpoint, &resp); err != nil {
		return Location{}, err
	}
	if resp.Status != "success" {
		return Location{}, fmt.Errorf("%w: status %q: %s", ErrLookupFailed, resp.Status, resp.Message)
	}
	if !validCountryCode(resp.CountryCode) || resp.Country == "" {
		return Location{}, fmt.Errorf("%w: missing country in payload", ErrLookupFailed)
	}
	if p.logger != nil {
		p.logger.DebugContext(ctx, "Geolocation lookup succeeded", slog.String("provider", p.name), slog.String("country_code", resp.CountryCode))
	}
	return Location{
		Country:     resp.Country,
		CountryCode: strings.ToUpper(resp.CountryCode),
		City:        resp.City,
		Region:      resp.RegionName,
	}, nil
}

func (p *IPAPIComProvider) Name() string { return p.name }

// Compile-time checks
var (
	_ Provider = (*IPAPIProvider)(nil)
	_ Provider = (*IPAPIComProvider)(nil)
)
