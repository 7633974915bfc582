package m3uparser

import (
	"strings"
	"sync"

	"github.com/biter777/countries"
	country_mapper "github.com/pirsquare/country-mapper"
	log "github.com/sirupsen/logrus"
)

// CountryResolver - Maps an ISO 3166-1 alpha-2 code to a country name.
// Unknown codes map to "".
type CountryResolver interface {
	Name(code string) string
}

// CountryResolverFunc adapts a function to CountryResolver.
type CountryResolverFunc func(code string) string

// Name calls f(code).
func (f CountryResolverFunc) Name(code string) string { return f(code) }

// mapperResolver looks names up with country-mapper. Its data is downloaded
// on first use; when that fails the offline countries table is used.
type mapperResolver struct {
	once   sync.Once
	client *country_mapper.CountryInfoClient
}

// NewCountryResolver - Default resolver.
func NewCountryResolver() CountryResolver {
	return &mapperResolver{}
}

func (r *mapperResolver) Name(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	r.once.Do(func() {
		client, err := country_mapper.Load()
		if err != nil {
			log.Warnf("country-mapper unavailable, using offline table: %v", err)
			return
		}
		r.client = client
	})
	if r.client != nil {
		if info := r.client.MapByAlpha2(code); info != nil {
			return info.Name
		}
	}
	return OfflineCountryName(code)
}

// OfflineCountryName - Country name from the built-in countries table.
func OfflineCountryName(code string) string {
	c := countries.ByName(strings.ToUpper(strings.TrimSpace(code)))
	if c == countries.Unknown {
		return ""
	}
	return c.String()
}
