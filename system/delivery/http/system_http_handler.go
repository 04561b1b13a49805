package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/MrCuPper/synapse-contracts/domain"
	"github.com/MrCuPper/synapse-contracts/domain/mvc"
	"github.com/MrCuPper/synapse-contracts/log"
)

// Pinger is implemented by stores that can report their availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	logger   log.Logger
	RUsecase mvc.RouterUsecase
	requests domain.RequestsRepository
	config   domain.Config
}

// HealthResponse is returned by the /healthcheck endpoint.
type HealthResponse struct {
	RouterStatus   string `json:"router_status"`
	RequestsStatus string `json:"requests_status"`
	RootToken      string `json:"root_token"`
	TreeNodes      int    `json:"tree_nodes"`
}

const (
	versionPlaceholder    = "version="
	whiteSpacePlaceholder = " "

	statusRunning = "running"
)

// NewSystemHandler will initialize the system resources endpoints
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger, router mvc.RouterUsecase, requests domain.RequestsRepository) {
	handler := &SystemHandler{
		logger:   logger,
		RUsecase: router,
		requests: requests,
		config:   config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// GetConfig returns the config the server was started with.
// The attester key is redacted.
func (h *SystemHandler) GetConfig(c echo.Context) error {
	config := h.config
	if config.Bridge != nil && config.Bridge.AttesterKey != "" {
		bridgeConfig := *config.Bridge
		bridgeConfig.AttesterKey = "REDACTED"
		config.Bridge = &bridgeConfig
	}
	return c.JSON(http.StatusOK, config)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string from the ldflags
func extractVersion(ldFlagsValueStr string) (string, error) {
	index := strings.Index(ldFlagsValueStr, versionPlaceholder)
	if index == -1 {
		return "", fmt.Errorf("no version string found")
	}

	substring := ldFlagsValueStr[index+len(versionPlaceholder):]

	index = strings.Index(substring, whiteSpacePlaceholder)
	if index == -1 {
		return substring, nil
	}

	return substring[:index], nil
}

// GetHealthStatus checks that the token tree is initialized and the request store is reachable.
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	ctx := c.Request().Context()

	treeNodes := h.RUsecase.TokenNodesAmount()
	if treeNodes == 0 {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "token tree has no root")
	}

	if pinger, ok := h.requests.(Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			h.logger.Error("Error connecting to the requests store", zap.Error(err))
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Error connecting to the requests store")
		}
	}

	return c.JSON(http.StatusOK, HealthResponse{
		RouterStatus:   statusRunning,
		RequestsStatus: statusRunning,
		RootToken:      strings.ToLower(h.RUsecase.RootToken().Hex()),
		TreeNodes:      treeNodes,
	})
}
