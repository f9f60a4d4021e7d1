package remote

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// DefaultWeatherURL is the OpenWeatherMap API root.
const DefaultWeatherURL = "https://api.openweathermap.org"

// WeatherClient reads current conditions from an OpenWeatherMap-compatible API.
type WeatherClient struct {
	fetcher
	apiKey string
}

// NewWeatherClient creates a weather client authenticated with apiKey.
func NewWeatherClient(apiKey string, opts ...Option) *WeatherClient {
	c := &WeatherClient{fetcher: newFetcher(DefaultWeatherURL), apiKey: apiKey}
	for _, opt := range opts {
		opt(&c.fetcher)
	}
	return c
}

// ByCity returns the current weather for a city name.
func (c *WeatherClient) ByCity(ctx context.Context, city string) (Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Weather{}, ErrEmptyCity
	}
	return c.current(ctx, url.Values{"q": []string{city}})
}

// ByCoords returns the current weather at a coordinate.
func (c *WeatherClient) ByCoords(ctx context.Context, lat, lon float64) (Weather, error) {
	return c.current(ctx, url.Values{
		"lat": []string{strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": []string{strconv.FormatFloat(lon, 'f', -1, 64)},
	})
}

func (c *WeatherClient) current(ctx context.Context, q url.Values) (Weather, error) {
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var w Weather
	if err := c.getJSON(ctx, "/data/2.5/weather", q, &w); err != nil {
		return Weather{}, err
	}
	return w, nil
}
