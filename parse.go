package bloc

import (
	"fmt"
	"net/url"
)

// Parse parses a locator string into a URL.
func Parse(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("bloc: failed to parse URL %q: %s", s, err)
	}
	return u, nil
}
