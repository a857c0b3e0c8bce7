package handlers

import (
	"net/http"

	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"

	"github.com/famvault/famvault-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to the supported currency catalogue.
type currencyHandler struct {
	currencyService portssvc.CurrencyCatalogSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencyCatalogSvc) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencyCatalogSvc) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
	}
}

// listCurrencies returns the fixed ordered list of supported currencies.
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(h.currencyService.SupportedCurrencies()))
}

// getCurrencyByCode returns the descriptor for a code. Unknown codes resolve
// to the default descriptor rather than a 404; the catalogue lookup never fails.
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	code := c.Param("code")
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(h.currencyService.CurrencyInfo(code)))
}
