package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"

	"github.com/famvault/famvault-backend/internal/dto"
	"github.com/famvault/famvault-backend/internal/middleware"
	"github.com/famvault/famvault-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to the exchange-rate table.
type rateHandler struct {
	cfg             *config.Config
	rateService     portssvc.RateSvcFacade
	currencyService portssvc.CurrencyConverterSvc
}

// newRateHandler creates a new rateHandler.
func newRateHandler(cfg *config.Config, rs portssvc.RateSvcFacade, cs portssvc.CurrencyConverterSvc) *rateHandler {
	return &rateHandler{cfg: cfg, rateService: rs, currencyService: cs}
}

// registerRateRoutes registers routes related to exchange rates and conversion.
func registerRateRoutes(rg *gin.RouterGroup, cfg *config.Config, rateService portssvc.RateSvcFacade, currencyService portssvc.CurrencySvcFacade) {
	h := newRateHandler(cfg, rateService, currencyService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.POST("/refresh", h.refreshRates)
		rates.GET("/:from/:to", h.getPairRate)
	}

	rg.POST("/convert", h.convert)
}

// getRates returns the rate table currently in use. A stale table is still
// served; staleness is advisory and only flags eligibility for refresh.
func (h *rateHandler) getRates(c *gin.Context) {
	h.rateService.Initialize(c.Request.Context())
	snapshot := h.rateService.Snapshot()
	c.JSON(http.StatusOK, dto.ToRatesResponse(h.cfg.BaseCurrency, snapshot, h.rateService.NeedsUpdate()))
}

// refreshRates forces a provider fetch regardless of TTL.
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	source := h.rateService.Refresh(c.Request.Context())
	logger.Info("Exchange rates refreshed", slog.String("source", string(source)))

	c.JSON(http.StatusOK, dto.RefreshRatesResponse{
		Source:    string(source),
		FetchedAt: h.rateService.LastUpdated(),
	})
}

// getPairRate returns the display rate between two currencies. A pair the
// table cannot price is a 404; conversion paths never fail this way, they
// pass amounts through unconverted instead.
func (h *rateHandler) getPairRate(c *gin.Context) {
	from := strings.ToUpper(c.Param("from"))
	to := strings.ToUpper(c.Param("to"))

	h.rateService.Initialize(c.Request.Context())
	rate, ok := h.currencyService.ExchangeRate(from, to)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No rate available for " + from + "/" + to})
		return
	}

	c.JSON(http.StatusOK, dto.PairRateResponse{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		LastUpdated:  h.rateService.LastUpdated(),
	})
}

// convert converts a single amount and returns the full display bundle.
func (h *rateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.rateService.Initialize(c.Request.Context())
	info := h.currencyService.ConversionInfo(c.Request.Context(), req.Amount, req.FromCurrency, req.ToCurrency)
	formatted := h.currencyService.FormatCurrency(&info.ConvertedAmount, info.ToCurrency, portssvc.DefaultFormatOptions())

	c.JSON(http.StatusOK, dto.ToConversionInfoResponse(info, formatted))
}
