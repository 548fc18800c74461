// README: Kakao Local REST client for place search and reverse geocoding.
package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tripkit/internal/types"
)

// NoAddress is the address sentinel used when a document carries neither a
// road address nor a lot address.
const NoAddress = "주소 정보 없음"

// ErrCityNotFound is returned when reverse geocoding matches none of the
// supported cities.
var ErrCityNotFound = errors.New("no supported city for coordinates")

// Place is a resolved place record. Immutable once created.
type Place struct {
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	CategoryCode string  `json:"categoryCode"`
}

// Client calls the Kakao Local REST API. Lookups are short-lived; the HTTP
// client uses a 5s dial and 10s overall timeout.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://dapi.kakao.com",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
	}
}

// document mirrors the fields of a Kakao Local search document. Coordinates
// come back as strings.
type document struct {
	PlaceName         string `json:"place_name"`
	X                 string `json:"x"`
	Y                 string `json:"y"`
	RoadAddressName   string `json:"road_address_name"`
	AddressName       string `json:"address_name"`
	Phone             string `json:"phone"`
	CategoryGroupCode string `json:"category_group_code"`
	Region1DepthName  string `json:"region_1depth_name"`
	Region2DepthName  string `json:"region_2depth_name"`
}

func (c *Client) getDocuments(ctx context.Context, path string, query url.Values) ([]document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("kakao: build request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("kakao: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao: %s returned status %d: %s", path, resp.StatusCode, body)
	}

	var parsed struct {
		Documents []document `json:"documents"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("kakao: decode response: %w", err)
	}
	return parsed.Documents, nil
}

// CityFromCoord reverse-geocodes a coordinate to a supported city. The
// returned region names are scanned for a display-name substring match against
// each city in types.Cities order; the first match wins.
func (c *Client) CityFromCoord(ctx context.Context, lat, lng float64) (types.City, error) {
	q := url.Values{}
	q.Set("x", formatCoord(lng))
	q.Set("y", formatCoord(lat))

	docs, err := c.getDocuments(ctx, "/v2/local/geo/coord2regioncode.json", q)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", ErrCityNotFound
	}

	// Metropolitan cities appear in the first-depth name, smaller cities in
	// the second-depth name.
	region := docs[0].Region1DepthName + " " + docs[0].Region2DepthName
	for _, city := range types.Cities {
		if strings.Contains(region, city.DisplayName()) {
			return city, nil
		}
	}
	return "", ErrCityNotFound
}

// Search runs a keyword search. When categoryCode is non-empty, the first
// document whose category group code equals it wins; when no document matches
// the filter, the first document wins unconditionally. An empty result set
// returns (nil, nil), not an error.
func (c *Client) Search(ctx context.Context, keyword, categoryCode string) (*Place, error) {
	q := url.Values{}
	q.Set("query", keyword)
	if categoryCode != "" {
		q.Set("category_group_code", categoryCode)
	}

	docs, err := c.getDocuments(ctx, "/v2/local/search/keyword.json", q)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	for i := range docs {
		if categoryCode == "" || docs[i].CategoryGroupCode == categoryCode {
			return docToPlace(docs[i]), nil
		}
	}
	return docToPlace(docs[0]), nil
}

// SearchNearCoord runs a keyword search biased to radius meters around a
// point and returns the first result only.
func (c *Client) SearchNearCoord(ctx context.Context, keyword string, lat, lng float64, radius int) (*Place, error) {
	q := url.Values{}
	q.Set("query", keyword)
	q.Set("x", formatCoord(lng))
	q.Set("y", formatCoord(lat))
	q.Set("radius", strconv.Itoa(radius))

	docs, err := c.getDocuments(ctx, "/v2/local/search/keyword.json", q)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docToPlace(docs[0]), nil
}

// TopByCategory runs a distance-sorted category search around a point, capped
// at limit results.
func (c *Client) TopByCategory(ctx context.Context, lat, lng float64, categoryCode string, limit int) ([]Place, error) {
	docs, err := c.categorySearch(ctx, lat, lng, categoryCode)
	if err != nil {
		return nil, err
	}

	var out []Place
	for i := range docs {
		out = append(out, *docToPlace(docs[i]))
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ManyByCategory runs a distance-sorted category search around a point with
// no result cap.
func (c *Client) ManyByCategory(ctx context.Context, lat, lng float64, categoryCode string) ([]Place, error) {
	docs, err := c.categorySearch(ctx, lat, lng, categoryCode)
	if err != nil {
		return nil, err
	}

	var out []Place
	for i := range docs {
		out = append(out, *docToPlace(docs[i]))
	}
	return out, nil
}

// ResolveGenerated resolves a model-emitted place name. When the model also
// produced a location hint, the hint is searched first; the generated name is
// the fallback only when the hint yields nothing.
func (c *Client) ResolveGenerated(ctx context.Context, generatedName, locationHint, categoryCode string) (*Place, error) {
	if locationHint != "" {
		p, err := c.Search(ctx, locationHint, categoryCode)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return c.Search(ctx, generatedName, categoryCode)
}

func (c *Client) categorySearch(ctx context.Context, lat, lng float64, categoryCode string) ([]document, error) {
	q := url.Values{}
	q.Set("category_group_code", categoryCode)
	q.Set("x", formatCoord(lng))
	q.Set("y", formatCoord(lat))
	q.Set("radius", "5000")
	q.Set("sort", "distance")
	return c.getDocuments(ctx, "/v2/local/search/category.json", q)
}

func docToPlace(d document) *Place {
	lat, _ := strconv.ParseFloat(d.Y, 64)
	lng, _ := strconv.ParseFloat(d.X, 64)

	// Road address preferred, lot address next, sentinel last.
	address := d.RoadAddressName
	if address == "" {
		address = d.AddressName
	}
	if address == "" {
		address = NoAddress
	}

	return &Place{
		Name:         d.PlaceName,
		Lat:          lat,
		Lng:          lng,
		Address:      address,
		Phone:        d.Phone,
		CategoryCode: d.CategoryGroupCode,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
