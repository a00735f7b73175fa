package calculator

// Italian property tax rates and fee schedules.
// These should be re-verified periodically as Italian tax law changes.

// Cadastral value multipliers applied to the annual cadastral income.
const (
	CadastralMultiplierPrimaCasa = 115.5
	CadastralMultiplierOther     = 126
)

// Registration tax (Imposta di Registro).
const (
	RegistrationTaxPrimaCasaRate  = 0.02 // 2% of cadastral value
	RegistrationTaxSecondHomeRate = 0.09 // 9% of cadastral value
	RegistrationTaxMinimum        = 1000 // floor for the prima casa rate
	RegistrationTaxFromDeveloper  = 200  // fixed fee when buying from a developer
)

// VAT (IVA) rates, applied on the purchase price only when buying from a
// developer.
const (
	VATRatePrimaCasa  = 0.04
	VATRateSecondHome = 0.10
	VATRateLuxury     = 0.22
)

// Mortgage tax (Imposta Ipotecaria) and cadastral tax (Imposta Catastale).
const (
	MortgageTaxPrimaCasaFixed  = 50
	MortgageTaxSecondHomeRate  = 0.02
	CadastralTaxPrimaCasaFixed = 50
	CadastralTaxSecondHomeRate = 0.01
	FixedTaxFromDeveloper      = 200
)

// Agency commission.
const (
	AgencyCommissionRate = 0.03
	AgencyCommissionVAT  = 0.22
)

// Professional fee defaults (estimates).
const (
	GeometraFeeDefault         = 800
	TechnicalReportsFeeDefault = 400
	TranslatorFeeDefault       = 300
)

// Mortgage-related fees.
const (
	BankFeeDefault                    = 750
	MortgageRegistrationTaxPrimaCasa  = 0.0025
	MortgageRegistrationTaxSecondHome = 0.02
	ValuationFeeDefault               = 300
)

// CurrencySpreadDefault is the estimated transfer cost for non-EUR buyers.
const CurrencySpreadDefault = 0.01

// IMU (annual property tax) rates. Prima casa is exempt except for luxury
// cadastral categories.
const (
	IMURatePrimaCasaLuxury   = 0.005
	IMURateSecondHomeTypical = 0.0086
)

// Annual per-square-metre estimates.
const (
	TARIPerSqm      = 2
	UtilitiesPerSqm = 16
)

// luxuryCategories are the cadastral categories taxed at the luxury rates.
var luxuryCategories = map[string]bool{
	"A/1": true,
	"A/8": true,
	"A/9": true,
}

// notaryFeeSchedule is the sliding notary fee scale: up to maxPrice the fee is
// baseFee plus rate on the excess over the previous threshold.
var notaryFeeSchedule = []struct {
	maxPrice float64
	baseFee  float64
	rate     float64
}{
	{50000, 1500, 0.025},
	{100000, 2250, 0.020},
	{250000, 3250, 0.015},
	{500000, 5500, 0.010},
	{1000000, 8000, 0.008},
}

// Over the last threshold: €12,000 base + 0.5% of the excess over €1M.
const (
	notaryFeeTopBase = 12000
	notaryFeeTopRate = 0.005
)

// SupportedCurrencies lists the currencies the calculator can convert to.
var SupportedCurrencies = []string{"EUR", "USD", "CAD", "GBP", "AUD"}

// FallbackRates returns approximate EUR-based exchange rates. A live rate
// service can replace these; the spread estimate dominates the error anyway.
func FallbackRates() map[string]float64 {
	return map[string]float64{
		"EUR": 1.0,
		"USD": 1.08,
		"CAD": 1.47,
		"GBP": 0.85,
		"AUD": 1.65,
	}
}
