package openstreetmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/kleinnic74/geodist/consts"
	"bitbucket.org/kleinnic74/geodist/domain/gps"
	"bitbucket.org/kleinnic74/geodist/geocoding"
	"bitbucket.org/kleinnic74/geodist/logging"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	DefaultTimeout = 10 * time.Second

	maxBodySize = 1 << 20
)

var errMissingField = errors.New("missing lat/lon")

type resolver struct {
	baseURL   string
	lang      string
	userAgent string
	client    *http.Client
}

type Option func(*resolver)

func WithBaseURL(u string) Option {
	return func(r *resolver) {
		r.baseURL = strings.TrimRight(u, "/")
	}
}

func WithUserAgent(ua string) Option {
	return func(r *resolver) {
		r.userAgent = ua
	}
}

func WithLanguages(lang ...string) Option {
	return func(r *resolver) {
		r.lang = strings.Join(lang, ",")
	}
}

func NewResolver(timeout time.Duration, opts ...Option) geocoding.Resolver {
	return NewResolverWithClient(&http.Client{Timeout: timeout}, opts...)
}

func NewResolverWithClient(client *http.Client, opts ...Option) geocoding.Resolver {
	r := &resolver{
		baseURL:   DefaultBaseURL,
		lang:      "en",
		userAgent: consts.UserAgent(),
		client:    client,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// latlon accepts both "12.34" and 12.34, Nominatim sends strings.
type latlon float64

func (p *latlon) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return err
		}
		*p = latlon(f)
	case float64:
		*p = latlon(t)
	default:
		return fmt.Errorf("coordinate must be a string or a number, got %s", string(data))
	}
	if math.IsNaN(float64(*p)) || math.IsInf(float64(*p), 0) {
		return fmt.Errorf("coordinate must be finite, got %s", string(data))
	}
	return nil
}

// place is only decoded for the first match. Fields other than lat/lon are
// logged and may have any type.
type place struct {
	ID          interface{} `json:"osm_id"`
	Lat         *latlon     `json:"lat"`
	Lon         *latlon     `json:"lon"`
	DisplayName interface{} `json:"display_name"`
}

func (p place) Coordinates() gps.Coordinates {
	return gps.NewCoordinates(float64(*p.Lat), float64(*p.Lon))
}

func (osm *resolver) searchURL(name string) string {
	q := url.Values{}
	q.Set("q", name)
	q.Set("format", "json")
	return osm.baseURL + "/search?" + q.Encode()
}

func (osm *resolver) Geocode(ctx context.Context, name string) (gps.Coordinates, error) {
	logger, ctx := logging.SubFrom(ctx, "openstreetmap")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, osm.searchURL(name), nil)
	if err != nil {
		return gps.Coordinates{}, geocoding.NewLookupError(name, geocoding.ReasonTransport, err)
	}
	req.Header.Set("User-Agent", osm.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", osm.lang)

	res, err := osm.client.Do(req)
	if err != nil {
		return gps.Coordinates{}, geocoding.NewLookupError(name, geocoding.ReasonTransport, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return gps.Coordinates{}, geocoding.NewLookupError(name, geocoding.ReasonTransport, err)
	}
	if res.StatusCode != http.StatusOK {
		return gps.Coordinates{}, geocoding.NewLookupError(name, geocoding.ReasonStatus,
			fmt.Errorf("unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(data))))
	}
	logger.Debug("search response", zap.String("response", string(data)))

	var places []json.RawMessage
	if err := json.Unmarshal(data, &places); err != nil {
		return gps.Coordinates{}, geocoding.NewLookupError(name, geocoding.ReasonMalformed, err)
	}
	if len(places) == 0 {
		return gps.Coordinates{}, geocoding.NewLookupError(name, geocoding.ReasonNoMatch, nil)
	}
	var first place
	if err := json.Unmarshal(places[0], &first); err != nil {
		return gps.Coordinates{}, geocoding.NewLookupError(name, geocoding.ReasonMalformed, err)
	}
	if first.Lat == nil || first.Lon == nil {
		return gps.Coordinates{}, geocoding.NewLookupError(name, geocoding.ReasonMalformed, errMissingField)
	}
	logger.Debug("first match",
		zap.Any("osm_id", first.ID),
		zap.Any("display_name", first.DisplayName),
		zap.Int("matches", len(places)))
	return first.Coordinates(), nil
}
