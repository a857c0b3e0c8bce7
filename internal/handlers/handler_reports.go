package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"

	"github.com/famvault/famvault-backend/internal/dto"
	"github.com/famvault/famvault-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler aggregates caller-supplied account and loan records. The
// records themselves live in the mobile app's own store; this service only
// does the multi-currency arithmetic.
type reportHandler struct {
	currencyService portssvc.CurrencySvcFacade
	settingsService portssvc.SettingsSvcFacade
	rateService     portssvc.RateSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(cs portssvc.CurrencySvcFacade, ss portssvc.SettingsSvcFacade, rs portssvc.RateSvcFacade) *reportHandler {
	return &reportHandler{currencyService: cs, settingsService: ss, rateService: rs}
}

// registerReportRoutes registers aggregation routes.
func registerReportRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, settingsService portssvc.SettingsSvcFacade, rateService portssvc.RateSvcFacade) {
	h := newReportHandler(currencyService, settingsService, rateService)

	reports := rg.Group("/reports")
	{
		reports.POST("/networth", h.netWorth)
	}
}

// netWorth converts every supplied account balance to the base currency,
// subtracts borrowed active-loan outstanding principal and returns the net
// figure in the requested display currency.
func (h *reportHandler) netWorth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.NetWorthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for NetWorth", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	h.rateService.Initialize(ctx)
	settings := h.settingsService.LoadUserCurrencySettings(ctx, userID)

	total := h.currencyService.TotalBalanceInCurrency(ctx, req.ToDomainAccounts(), req.DisplayCurrency, settings, req.ToDomainLoans())
	formatted := h.currencyService.FormatCurrency(&total, req.DisplayCurrency, portssvc.DefaultFormatOptions())

	c.JSON(http.StatusOK, dto.NetWorthResponse{
		Total:           total,
		DisplayCurrency: req.DisplayCurrency,
		Formatted:       formatted,
	})
}
