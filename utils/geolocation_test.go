package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoResolverNilReceiver(t *testing.T) {
	var g *GeoResolver

	loc := g.Lookup("1.2.3.4")
	assert.Equal(t, GeoLocation{Country: "Unknown", City: "Unknown"}, loc)
	g.Close()
}

func TestNewGeoResolverBadPathFallsBackToAPIMode(t *testing.T) {
	g := NewGeoResolver("/nonexistent/GeoLite2-City.mmdb")
	assert.NotNil(t, g)
	defer g.Close()

	// no database loaded
	_, found := g.lookupDB("1.2.3.4")
	assert.False(t, found)
}

func TestGeoResolverCacheHitSkipsLookups(t *testing.T) {
	g := NewGeoResolver("")
	defer g.Close()

	want := GeoLocation{Country: "Iceland", City: "Reykjavik", Lat: 64.1, Lon: -21.9}
	g.cache.Store("203.0.113.9", want)

	assert.Equal(t, want, g.Lookup("203.0.113.9"))
}
