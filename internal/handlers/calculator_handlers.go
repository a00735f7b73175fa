package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/italypros/directory-api/internal/calculator"
)

// Calculate is the handler for POST /v1/api/calculate
// Stateless: it validates the input, runs the estimate, and returns the full
// breakdown. Nothing is persisted.
func (h *Handlers) Calculate(c *gin.Context) {
	var input calculator.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, calculator.Calculate(input))
}

// GetTaxRates is the handler for GET /v1/api/tax-rates
// A static reference payload for the frontend's "how is this calculated" page.
func (h *Handlers) GetTaxRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"registration_tax": gin.H{
			"prima_casa_rate":  calculator.RegistrationTaxPrimaCasaRate,
			"second_home_rate": calculator.RegistrationTaxSecondHomeRate,
			"minimum":          calculator.RegistrationTaxMinimum,
			"from_developer":   calculator.RegistrationTaxFromDeveloper,
		},
		"vat": gin.H{
			"prima_casa":  calculator.VATRatePrimaCasa,
			"second_home": calculator.VATRateSecondHome,
			"luxury":      calculator.VATRateLuxury,
		},
		"cadastral_multipliers": gin.H{
			"prima_casa": calculator.CadastralMultiplierPrimaCasa,
			"other":      calculator.CadastralMultiplierOther,
		},
		"imu": gin.H{
			"prima_casa_luxury":   calculator.IMURatePrimaCasaLuxury,
			"second_home_typical": calculator.IMURateSecondHomeTypical,
		},
		"luxury_categories": []string{"A/1", "A/8", "A/9"},
	})
}

// GetExchangeRates is the handler for GET /v1/api/rates
// Serves the EUR-based fallback table. The date is today: the rates are
// approximations, not a live feed.
func (h *Handlers) GetExchangeRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"base":       "EUR",
		"rates":      calculator.FallbackRates(),
		"currencies": calculator.SupportedCurrencies,
		"date":       time.Now().Format("2006-01-02"),
	})
}
