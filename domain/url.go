package domain

import (
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

// RequestPathKeyType is a custom type for request path key.
type RequestPathKeyType string

const (
	// RequestPathCtxKey is the key used to store the request path in the request context
	RequestPathCtxKey RequestPathKeyType = "request_path"

	// CallerHeader carries the address of the caller of administrative endpoints.
	CallerHeader = "X-Caller"
)

// ParseURLPath parses the URL path from the echo context
func ParseURLPath(c echo.Context) (string, error) {
	parsedURL, err := url.Parse(c.Request().RequestURI)
	if err != nil {
		return "", err
	}

	return parsedURL.Path, nil
}

// ParseCaller returns the caller address set in the CallerHeader.
// The header is not authenticated and any client can spoof it; access control is out of scope here.
func ParseCaller(c echo.Context) (common.Address, error) {
	caller := c.Request().Header.Get(CallerHeader)
	if caller == "" {
		return common.Address{}, ErrUnauthorized
	}

	return ParseAddress(caller)
}
