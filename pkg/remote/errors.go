package remote

import (
	"errors"
	"fmt"
)

// ErrEmptyCity is returned by WeatherClient.ByCity when no city is given.
var ErrEmptyCity = errors.New("please enter a city name")

// HTTPError reports a non-2xx response from a remote API.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

// IsNotFound reports whether err is an HTTP 404 from a remote API.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == 404
}
