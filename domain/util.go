package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// ParseAddresses parses a comma-separated list of hex addresses.
func ParseAddresses(addressesParam string) ([]common.Address, error) {
	var addresses []common.Address
	for _, addressStr := range SplitAndTrim(addressesParam, ",") {
		address, err := ParseAddress(addressStr)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}

	return addresses, nil
}

// ParseBooleanQueryParam parses a boolean query parameter.
// Returns false if the parameter is not present.
// Errors if the value is not a valid boolean.
func ParseBooleanQueryParam(c echo.Context, paramName string) (paramValue bool, err error) {
	paramValueStr := c.QueryParam(paramName)
	if paramValueStr != "" {
		paramValue, err = strconv.ParseBool(paramValueStr)
		if err != nil {
			return false, err
		}
	}

	return paramValue, nil
}

// ParseAddressQueryParam parses a required address query parameter.
func ParseAddressQueryParam(c echo.Context, paramName string) (common.Address, error) {
	paramValueStr := c.QueryParam(paramName)
	if paramValueStr == "" {
		return common.Address{}, fmt.Errorf("%s is required: %w", paramName, ErrBadParamInput)
	}

	return ParseAddress(paramValueStr)
}

// ParseAmountQueryParam parses a required amount query parameter.
func ParseAmountQueryParam(c echo.Context, paramName string) (osmomath.Int, error) {
	paramValueStr := c.QueryParam(paramName)
	if paramValueStr == "" {
		return osmomath.Int{}, fmt.Errorf("%s is required: %w", paramName, ErrBadParamInput)
	}

	return ParseAmount(paramValueStr)
}

// ParseIndexQueryParam parses a required node or token index query parameter.
func ParseIndexQueryParam(c echo.Context, paramName string) (uint8, error) {
	paramValueStr := c.QueryParam(paramName)
	if paramValueStr == "" {
		return 0, fmt.Errorf("%s is required: %w", paramName, ErrBadParamInput)
	}

	index, err := strconv.ParseUint(paramValueStr, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%s must be within [0, 255]: %w", paramName, ErrBadParamInput)
	}

	return uint8(index), nil
}

// SplitAndTrim splits a string by a separator, trims the parts and drops empty ones.
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, val := range strings.Split(s, sep) {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
