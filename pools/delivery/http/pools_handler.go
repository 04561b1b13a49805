package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
)

// PoolsHandler  represent the httphandler for pools
type PoolsHandler struct {
	PUsecase mvc.PoolsUsecase
}

// PoolQuoteResponse is returned by the /pools/:address/quote endpoint.
type PoolQuoteResponse struct {
	AmountOut osmomath.Int `json:"amount_out"`
}

const resourcePrefix = "/pools"

func formatPoolsResource(resource string) string {
	return resourcePrefix + resource
}

// NewPoolsHandler will initialize the pools/ resources endpoint
func NewPoolsHandler(e *echo.Echo, us mvc.PoolsUsecase) {
	handler := &PoolsHandler{
		PUsecase: us,
	}

	e.GET(formatPoolsResource(""), handler.GetPools)
	e.GET(formatPoolsResource("/:address/quote"), handler.GetPoolQuote)
}

// @Summary Get pool(s) information
// @Description Returns every registered pool if the addresses parameter is not given. Otherwise,
// @Description it fetches the pools at the given addresses.
// @ID get-pools
// @Produce  json
// @Param  addresses  query  string  false  "Comma-separated list of pool addresses"
// @Success 200  {array}  domain.PoolInfo  "List of pool(s) details"
// @Router /pools [get]
func (a *PoolsHandler) GetPools(c echo.Context) error {
	ctx := c.Request().Context()

	addressesStr := c.QueryParam("addresses")

	// if addresses are not given, get all pools
	if len(addressesStr) == 0 {
		pools, err := a.PUsecase.GetPoolInfos(ctx)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, pools)
	}

	addresses, err := domain.ParseAddresses(addressesStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	pools := make([]domain.PoolInfo, 0, len(addresses))
	for _, address := range addresses {
		pool, err := a.PUsecase.GetPoolInfo(ctx, address)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
		pools = append(pools, pool)
	}

	return c.JSON(http.StatusOK, pools)
}

// @Summary Quote a single pool
// @Description quotes swapping amountIn between two token indexes of the pool. A paused pool quotes zero.
// @ID get-pool-quote
// @Produce  json
// @Param  address  path  string  true  "Pool address"
// @Param  tokenIndexFrom  query  int  true  "Pool index of the token in"
// @Param  tokenIndexTo  query  int  true  "Pool index of the token out"
// @Param  amountIn  query  string  true  "Amount of token in"
// @Success 200  {object}  PoolQuoteResponse  "The quoted amount out"
// @Router /pools/{address}/quote [get]
func (a *PoolsHandler) GetPoolQuote(c echo.Context) error {
	ctx := c.Request().Context()

	address, err := domain.ParseAddress(c.Param("address"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	tokenIndexFrom, err := domain.ParseIndexQueryParam(c, "tokenIndexFrom")
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	tokenIndexTo, err := domain.ParseIndexQueryParam(c, "tokenIndexTo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	amountIn, err := domain.ParseAmountQueryParam(c, "amountIn")
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	amountOut, err := a.PUsecase.QuotePool(ctx, address, tokenIndexFrom, tokenIndexTo, amountIn)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, PoolQuoteResponse{AmountOut: amountOut})
}
