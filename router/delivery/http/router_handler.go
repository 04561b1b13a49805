package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
	"github.com/MrCuPper/synapse-contracts/router/types"
)

// RouterHandler  represent the httphandler for the router
type RouterHandler struct {
	RUsecase mvc.RouterUsecase
	logger   log.Logger

	// StateDirectory is where /router/store-state writes the tree state.
	StateDirectory string
}

// AmountOutResponse is returned by the quote and swap endpoints.
type AmountOutResponse struct {
	AmountOut osmomath.Int `json:"amount_out"`
}

// ConnectedTokensResponse is returned by the /router/connected-tokens endpoint.
type ConnectedTokensResponse struct {
	AmountFound int    `json:"amount_found"`
	IsConnected []bool `json:"is_connected"`
}

const (
	routerResource = "/router"

	defaultStateDirectory = "router_state"
)

func formatRouterResource(resource string) string {
	return routerResource + resource
}

// NewRouterHandler will initialize the router/ resources endpoint
func NewRouterHandler(e *echo.Echo, us mvc.RouterUsecase, logger log.Logger) {
	handler := &RouterHandler{
		RUsecase:       us,
		logger:         logger,
		StateDirectory: defaultStateDirectory,
	}
	e.GET(formatRouterResource("/quote"), handler.GetQuote)
	e.GET(formatRouterResource("/best-path"), handler.GetBestPath)
	e.GET(formatRouterResource("/connected-tokens"), handler.GetConnectedTokens)
	e.GET(formatRouterResource("/nodes"), handler.GetNodes)
	e.POST(formatRouterResource("/swap"), handler.Swap)
	e.POST(formatRouterResource("/pools"), handler.AddPool)
	e.POST(formatRouterResource("/store-state"), handler.StoreRouterStateInFiles)
}

// @Summary Quote between two tree nodes
// @Description returns the amount out of swapping amountIn from the token at tokenIndexFrom to the token at tokenIndexTo. Zero if no valid path exists.
// @ID get-router-quote
// @Produce  json
// @Param  tokenIndexFrom  query  int  true  "Index of the node holding the token in"
// @Param  tokenIndexTo  query  int  true  "Index of the node holding the token out"
// @Param  amountIn  query  string  true  "Amount of token in"
// @Success 200  {object}  AmountOutResponse  "The quoted amount out"
// @Router /router/quote [get]
func (a *RouterHandler) GetQuote(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.GetQuoteRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	amountOut, err := a.RUsecase.CalculateSwap(ctx, req.TokenIndexFrom, req.TokenIndexTo, req.AmountIn)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, AmountOutResponse{AmountOut: amountOut})
}

// @Summary Best path between two tokens
// @Description returns the pair of nodes holding tokenIn and tokenOut with the largest quote. Paused pools are skipped.
// @ID get-router-best-path
// @Produce  json
// @Param  tokenIn  query  string  true  "Address of the token in"
// @Param  tokenOut  query  string  true  "Address of the token out"
// @Param  amountIn  query  string  true  "Amount of token in"
// @Success 200  {object}  domain.BestPath  "The best path"
// @Router /router/best-path [get]
func (a *RouterHandler) GetBestPath(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.GetBestPathRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, a.RUsecase.FindBestPath(ctx, req.TokenIn, req.TokenOut, req.AmountIn))
}

// @Summary Tokens connected to a token out
// @ID get-router-connected-tokens
// @Produce  json
// @Param  tokensIn  query  string  true  "Comma separated addresses of the tokens in"
// @Param  tokenOut  query  string  true  "Address of the token out"
// @Success 200  {object}  ConnectedTokensResponse  "Which of the tokens in can be swapped into the token out"
// @Router /router/connected-tokens [get]
func (a *RouterHandler) GetConnectedTokens(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.GetConnectedTokensRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	amountFound, isConnected := a.RUsecase.GetConnectedTokens(ctx, req.TokensIn, req.TokenOut)

	return c.JSON(http.StatusOK, ConnectedTokensResponse{
		AmountFound: amountFound,
		IsConnected: isConnected,
	})
}

// @Summary Tree nodes
// @ID get-router-nodes
// @Produce  json
// @Success 200  {array}  domain.NodeView  "All nodes of the tree"
// @Router /router/nodes [get]
func (a *RouterHandler) GetNodes(c echo.Context) error {
	return c.JSON(http.StatusOK, a.RUsecase.GetNodes())
}

// Swap executes a swap between two tree nodes on behalf of the caller in the body.
func (a *RouterHandler) Swap(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.SwapRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	amountOut, err := a.RUsecase.Swap(ctx, req.Caller, req.TokenIndexFrom, req.TokenIndexTo, req.AmountIn, req.MinAmountOut, req.GetDeadline())
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, AmountOutResponse{AmountOut: amountOut})
}

// AddPool attaches a registered pool to a tree node. The caller header must carry the owner address.
func (a *RouterHandler) AddPool(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := domain.ParseCaller(c)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	var req types.AddPoolRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.RUsecase.AddPool(ctx, caller, req.NodeIndex, req.Pool, nil, req.TokenCount); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	a.logger.Info("pool added", zap.Stringer("pool", req.Pool), zap.Int("node_index", req.NodeIndex))

	return c.JSON(http.StatusOK, a.RUsecase.GetNodes())
}

// StoreRouterStateInFiles writes the tree state to StateDirectory. Used for debugging.
func (a *RouterHandler) StoreRouterStateInFiles(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.RUsecase.StoreTreeState(ctx, a.StateDirectory); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, "Router state stored in files")
}
