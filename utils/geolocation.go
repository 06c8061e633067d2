package utils

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/oschwald/geoip2-golang"
)

type GeoLocation struct {
	Country string
	City    string
	Lat     float64
	Lon     float64
}

// GeoResolver estimates node locations from their IPs: local MaxMind DB
// first, ip-api.com as fallback, results cached per IP.
type GeoResolver struct {
	db         *geoip2.Reader
	httpClient *http.Client
	cache      sync.Map // map[string]GeoLocation
}

// NewGeoResolver never fails: without a usable database it runs in API-only
// mode.
func NewGeoResolver(dbPath string) *GeoResolver {
	var db *geoip2.Reader

	if dbPath != "" {
		var err error
		db, err = geoip2.Open(dbPath)
		if err != nil {
			fmt.Printf("Warning: Could not open GeoIP database at %s: %v. Using API fallback only.\n", dbPath, err)
			db = nil
		}
	}

	return &GeoResolver{
		db: db,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (g *GeoResolver) Close() {
	if g != nil && g.db != nil {
		g.db.Close()
	}
}

// Lookup is safe on a nil receiver and always returns something renderable.
func (g *GeoResolver) Lookup(ipStr string) GeoLocation {
	if g == nil {
		return GeoLocation{Country: "Unknown", City: "Unknown"}
	}

	if val, ok := g.cache.Load(ipStr); ok {
		return val.(GeoLocation)
	}

	loc, found := g.lookupDB(ipStr)

	if !found {
		if apiLoc, err := g.fetchFromAPI(ipStr); err == nil {
			loc = *apiLoc
			found = true
		}
	}

	if !found {
		loc = GeoLocation{Country: "Unknown", City: "Unknown"}
	}

	g.cache.Store(ipStr, loc)
	return loc
}

func (g *GeoResolver) lookupDB(ipStr string) (GeoLocation, bool) {
	if g.db == nil {
		return GeoLocation{}, false
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return GeoLocation{}, false
	}

	record, err := g.db.City(ip)
	if err != nil {
		return GeoLocation{}, false
	}

	return GeoLocation{
		Country: record.Country.Names["en"],
		City:    record.City.Names["en"],
		Lat:     record.Location.Latitude,
		Lon:     record.Location.Longitude,
	}, true
}

type ipApiResponse struct {
	Country string  `json:"country"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Status  string  `json:"status"`
}

func (g *GeoResolver) fetchFromAPI(ip string) (*GeoLocation, error) {
	url := fmt.Sprintf("http://ip-api.com/json/%s", ip)
	resp, err := g.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error: %d", resp.StatusCode)
	}

	var apiResp ipApiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status == "fail" {
		return nil, fmt.Errorf("api returned fail status")
	}

	return &GeoLocation{
		Country: apiResp.Country,
		City:    apiResp.City,
		Lat:     apiResp.Lat,
		Lon:     apiResp.Lon,
	}, nil
}
