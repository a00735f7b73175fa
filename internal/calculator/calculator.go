// Package calculator estimates the full cost of an Italian property purchase:
// one-time taxes and fees at completion, plus ongoing annual ownership costs.
// All amounts are computed in EUR and optionally mirrored into the buyer's
// currency.
package calculator

import (
	"fmt"
	"strings"
)

// PropertyInput is the JSON body for POST /v1/api/calculate.
// Optional booleans that default to true (agency fee, geometra) are pointers
// so an absent field is distinguishable from an explicit false.
type PropertyInput struct {
	PurchasePrice     float64  `json:"purchase_price" binding:"required,gt=0"`
	SourceCurrency    string   `json:"source_currency" binding:"omitempty,oneof=EUR USD CAD GBP AUD"`
	PropertyType      string   `json:"property_type" binding:"omitempty,oneof=residential commercial agricultural"`
	CadastralCategory string   `json:"cadastral_category"`
	CadastralIncome   *float64 `json:"cadastral_income" binding:"omitempty,gte=0"`
	SellerType        string   `json:"seller_type" binding:"omitempty,oneof=private developer"`
	PropertySizeSqm   *float64 `json:"property_size_sqm" binding:"omitempty,gte=0"`

	PrimaCasa       bool     `json:"prima_casa"`
	ResidentInItaly bool     `json:"resident_in_italy"`
	UsingMortgage   bool     `json:"using_mortgage"`
	MortgageAmount  *float64 `json:"mortgage_amount" binding:"omitempty,gte=0"`

	RenovationBudget  *float64 `json:"renovation_budget" binding:"omitempty,gte=0"`
	IncludeAgencyFee  *bool    `json:"include_agency_fee"`
	AgencyRate        *float64 `json:"agency_rate" binding:"omitempty,gte=0,lte=0.10"`
	IncludeGeometra   *bool    `json:"include_geometra"`
	IncludeTranslator bool     `json:"include_translator"`
	IsApartment       bool     `json:"is_apartment"`
	MonthlyCondoFee   *float64 `json:"monthly_condo_fee" binding:"omitempty,gte=0"`
}

// CostItem is one line of the cost breakdown.
type CostItem struct {
	Name          string   `json:"name"`
	AmountEUR     float64  `json:"amount_eur"`
	AmountForeign *float64 `json:"amount_foreign,omitempty"`
	Description   string   `json:"description,omitempty"`
	IsEstimate    bool     `json:"is_estimate"`
}

// CostCategory groups cost items with their subtotal.
type CostCategory struct {
	Name            string     `json:"name"`
	Items           []CostItem `json:"items"`
	SubtotalEUR     float64    `json:"subtotal_eur"`
	SubtotalForeign *float64   `json:"subtotal_foreign,omitempty"`
}

// Result is the complete calculation output.
type Result struct {
	PurchasePriceEUR     float64  `json:"purchase_price_eur"`
	PurchasePriceForeign *float64 `json:"purchase_price_foreign,omitempty"`
	SourceCurrency       string   `json:"source_currency"`
	ExchangeRate         *float64 `json:"exchange_rate,omitempty"`
	PropertyType         string   `json:"property_type"`
	IsPrimaCasa          bool     `json:"is_prima_casa"`
	SellerType           string   `json:"seller_type"`

	CadastralValue float64 `json:"cadastral_value"`

	OneTimeCosts       CostCategory `json:"one_time_costs"`
	OngoingAnnualCosts CostCategory `json:"ongoing_annual_costs"`

	TotalOneTimeEUR     float64  `json:"total_one_time_eur"`
	TotalOneTimeForeign *float64 `json:"total_one_time_foreign,omitempty"`
	TotalAnnualEUR      float64  `json:"total_annual_eur"`
	TotalAnnualForeign  *float64 `json:"total_annual_foreign,omitempty"`

	GrandTotalFirstYearEUR     float64  `json:"grand_total_first_year_eur"`
	GrandTotalFirstYearForeign *float64 `json:"grand_total_first_year_foreign,omitempty"`

	OneTimePercentage float64 `json:"one_time_percentage"`

	Notes []string `json:"notes"`
}

func (in *PropertyInput) normalize() {
	if in.SourceCurrency == "" {
		in.SourceCurrency = "EUR"
	}
	if in.PropertyType == "" {
		in.PropertyType = "residential"
	}
	if in.SellerType == "" {
		in.SellerType = "private"
	}
}

func boolOrDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// CadastralValue derives the taxable cadastral value. Without the actual
// cadastral income it falls back to 40% of the purchase price, a typical
// market-to-cadastral ratio.
func CadastralValue(cadastralIncome *float64, primaCasa bool, purchasePrice float64) float64 {
	if cadastralIncome != nil && *cadastralIncome > 0 {
		if primaCasa {
			return *cadastralIncome * CadastralMultiplierPrimaCasa
		}
		return *cadastralIncome * CadastralMultiplierOther
	}
	return purchasePrice * 0.40
}

// NotaryFee applies the sliding notary fee scale to the purchase price.
func NotaryFee(purchasePrice float64) float64 {
	prev := 0.0
	for _, band := range notaryFeeSchedule {
		if purchasePrice <= band.maxPrice {
			return band.baseFee + (purchasePrice-prev)*band.rate
		}
		prev = band.maxPrice
	}
	return notaryFeeTopBase + (purchasePrice-1000000)*notaryFeeTopRate
}

// IsLuxury reports whether the cadastral category is one of the luxury
// categories (A/1, A/8, A/9).
func IsLuxury(cadastralCategory string) bool {
	return luxuryCategories[strings.ToUpper(strings.TrimSpace(cadastralCategory))]
}

func oneTimeCosts(in PropertyInput, cadastralValue float64) ([]CostItem, []string) {
	var items []CostItem
	var notes []string
	luxury := IsLuxury(in.CadastralCategory)

	if in.SellerType == "developer" {
		items = append(items, CostItem{
			Name:        "Registration Tax (Imposta di Registro)",
			AmountEUR:   RegistrationTaxFromDeveloper,
			Description: "Fixed fee when buying from developer",
		})

		var vatRate float64
		var vatDesc string
		switch {
		case luxury:
			vatRate, vatDesc = VATRateLuxury, "22% VAT on luxury property"
		case in.PrimaCasa:
			vatRate, vatDesc = VATRatePrimaCasa, "4% VAT (prima casa rate)"
		default:
			vatRate, vatDesc = VATRateSecondHome, "10% VAT (second home rate)"
		}
		items = append(items, CostItem{
			Name:        "VAT (IVA)",
			AmountEUR:   in.PurchasePrice * vatRate,
			Description: vatDesc,
		})
		notes = append(notes, "VAT applies because purchasing from developer/company")

		items = append(items,
			CostItem{Name: "Mortgage Tax (Imposta Ipotecaria)", AmountEUR: FixedTaxFromDeveloper, Description: "Fixed fee when buying from developer"},
			CostItem{Name: "Cadastral Tax (Imposta Catastale)", AmountEUR: FixedTaxFromDeveloper, Description: "Fixed fee when buying from developer"},
		)
	} else {
		if in.PrimaCasa {
			regTax := cadastralValue * RegistrationTaxPrimaCasaRate
			if regTax < RegistrationTaxMinimum {
				regTax = RegistrationTaxMinimum
			}
			items = append(items, CostItem{
				Name:        "Registration Tax (Imposta di Registro)",
				AmountEUR:   regTax,
				Description: "2% of cadastral value (prima casa rate, min €1,000)",
			})
			items = append(items,
				CostItem{Name: "Mortgage Tax (Imposta Ipotecaria)", AmountEUR: MortgageTaxPrimaCasaFixed, Description: "Fixed €50 for prima casa"},
				CostItem{Name: "Cadastral Tax (Imposta Catastale)", AmountEUR: CadastralTaxPrimaCasaFixed, Description: "Fixed €50 for prima casa"},
			)
		} else {
			items = append(items,
				CostItem{
					Name:        "Registration Tax (Imposta di Registro)",
					AmountEUR:   cadastralValue * RegistrationTaxSecondHomeRate,
					Description: "9% of cadastral value (second home rate)",
				},
				CostItem{Name: "Mortgage Tax (Imposta Ipotecaria)", AmountEUR: cadastralValue * MortgageTaxSecondHomeRate, Description: "2% of cadastral value"},
				CostItem{Name: "Cadastral Tax (Imposta Catastale)", AmountEUR: cadastralValue * CadastralTaxSecondHomeRate, Description: "1% of cadastral value"},
			)
		}
		notes = append(notes, fmt.Sprintf("Registration tax calculated on cadastral value (€%.0f), not purchase price", cadastralValue))
	}

	items = append(items, CostItem{
		Name:        "Notary Fees",
		AmountEUR:   NotaryFee(in.PurchasePrice),
		Description: "Based on purchase price, includes deed and searches",
		IsEstimate:  true,
	})

	if boolOrDefault(in.IncludeAgencyFee, true) {
		agencyRate := AgencyCommissionRate
		if in.AgencyRate != nil {
			agencyRate = *in.AgencyRate
		}
		commission := in.PurchasePrice * agencyRate
		items = append(items, CostItem{
			Name:        "Agency Commission",
			AmountEUR:   commission * (1 + AgencyCommissionVAT),
			Description: fmt.Sprintf("%.0f%% + 22%% VAT = %.2f%% effective", agencyRate*100, agencyRate*1.22*100),
			IsEstimate:  true,
		})
	}

	if boolOrDefault(in.IncludeGeometra, true) {
		items = append(items, CostItem{
			Name:        "Geometra (Surveyor)",
			AmountEUR:   GeometraFeeDefault,
			Description: "Technical verification and documentation",
			IsEstimate:  true,
		})
	}

	items = append(items, CostItem{
		Name:        "Technical Reports",
		AmountEUR:   TechnicalReportsFeeDefault,
		Description: "Energy certificate, property checks",
		IsEstimate:  true,
	})

	if in.IncludeTranslator {
		items = append(items, CostItem{
			Name:        "Translator",
			AmountEUR:   TranslatorFeeDefault,
			Description: "For deed signing if needed",
			IsEstimate:  true,
		})
	}

	if in.UsingMortgage {
		mortgageAmount := in.PurchasePrice * 0.7
		if in.MortgageAmount != nil && *in.MortgageAmount > 0 {
			mortgageAmount = *in.MortgageAmount
		}

		items = append(items, CostItem{
			Name:        "Bank Fees",
			AmountEUR:   BankFeeDefault,
			Description: "Mortgage arrangement fee",
			IsEstimate:  true,
		})

		if in.PrimaCasa {
			items = append(items, CostItem{
				Name:        "Mortgage Registration Tax",
				AmountEUR:   mortgageAmount * MortgageRegistrationTaxPrimaCasa,
				Description: "0.25% of mortgage amount (prima casa rate)",
			})
		} else {
			items = append(items, CostItem{
				Name:        "Mortgage Registration Tax",
				AmountEUR:   mortgageAmount * MortgageRegistrationTaxSecondHome,
				Description: "2% of mortgage amount",
			})
		}

		items = append(items, CostItem{
			Name:        "Property Valuation",
			AmountEUR:   ValuationFeeDefault,
			Description: "Bank's property assessment",
			IsEstimate:  true,
		})
	}

	if in.SourceCurrency != "EUR" {
		items = append(items, CostItem{
			Name:        "Currency Transfer Cost",
			AmountEUR:   in.PurchasePrice * CurrencySpreadDefault,
			Description: "~1% spread estimate",
			IsEstimate:  true,
		})
		notes = append(notes, "Currency transfer cost varies by provider. Specialist services may offer better rates than banks.")
	}

	if in.RenovationBudget != nil && *in.RenovationBudget > 0 {
		items = append(items, CostItem{
			Name:        "Renovation Budget",
			AmountEUR:   *in.RenovationBudget,
			Description: "User-specified renovation amount",
		})
	}

	return items, notes
}

func annualCosts(in PropertyInput, cadastralValue float64) ([]CostItem, []string) {
	var items []CostItem
	var notes []string
	luxury := IsLuxury(in.CadastralCategory)

	propertySize := 100.0
	if in.PropertySizeSqm != nil && *in.PropertySizeSqm > 0 {
		propertySize = *in.PropertySizeSqm
	}

	if in.PrimaCasa && !luxury {
		items = append(items, CostItem{
			Name:        "IMU (Property Tax)",
			AmountEUR:   0,
			Description: "Exempt for prima casa (main residence)",
		})
		notes = append(notes, "Primary residence is exempt from IMU (except luxury categories A/1, A/8, A/9)")
	} else {
		imuRate := IMURateSecondHomeTypical
		imuDesc := "~0.86% of cadastral value (varies by municipality)"
		if in.PrimaCasa && luxury {
			imuRate = IMURatePrimaCasaLuxury
			imuDesc = "0.5% of cadastral value (luxury main residence)"
		}
		items = append(items, CostItem{
			Name:        "IMU (Property Tax)",
			AmountEUR:   cadastralValue * imuRate,
			Description: imuDesc,
			IsEstimate:  true,
		})
		notes = append(notes, "IMU rate varies by municipality (0.76% - 1.06%). Using typical rate of 0.86%")
	}

	items = append(items, CostItem{
		Name:        "TARI (Waste Tax)",
		AmountEUR:   propertySize * TARIPerSqm,
		Description: fmt.Sprintf("~€%d/sqm/year estimate for %.0fsqm", TARIPerSqm, propertySize),
		IsEstimate:  true,
	})

	if in.IsApartment {
		if in.MonthlyCondoFee != nil && *in.MonthlyCondoFee > 0 {
			items = append(items, CostItem{
				Name:        "Condominium Fees",
				AmountEUR:   *in.MonthlyCondoFee * 12,
				Description: fmt.Sprintf("€%.0f/month × 12", *in.MonthlyCondoFee),
			})
		} else {
			monthlyEstimate := 100 + propertySize*0.5
			items = append(items, CostItem{
				Name:        "Condominium Fees",
				AmountEUR:   monthlyEstimate * 12,
				Description: fmt.Sprintf("Estimated ~€%.0f/month", monthlyEstimate),
				IsEstimate:  true,
			})
			notes = append(notes, "Condominium fees vary widely by building and services. Verify with seller.")
		}
	}

	items = append(items, CostItem{
		Name:        "Utilities (Estimate)",
		AmountEUR:   propertySize * UtilitiesPerSqm,
		Description: fmt.Sprintf("Electricity, gas, water for %.0fsqm", propertySize),
		IsEstimate:  true,
	})

	return items, notes
}

// Convert converts an amount between two supported currencies using EUR-based
// rates. Unknown currencies pass through at 1.0.
func Convert(amount float64, from, to string, rates map[string]float64) float64 {
	if from == to {
		return amount
	}
	rateOf := func(currency string) float64 {
		if rate, ok := rates[currency]; ok && rate > 0 {
			return rate
		}
		return 1.0
	}
	return amount / rateOf(from) * rateOf(to)
}

// Calculate runs the complete cost estimate for one property purchase.
func Calculate(in PropertyInput) Result {
	in.normalize()
	rates := FallbackRates()

	cadastralValue := CadastralValue(in.CadastralIncome, in.PrimaCasa, in.PurchasePrice)

	oneTimeItems, oneTimeNotes := oneTimeCosts(in, cadastralValue)
	annualItems, annualNotes := annualCosts(in, cadastralValue)

	var oneTimeTotal, annualTotal float64
	for _, item := range oneTimeItems {
		oneTimeTotal += item.AmountEUR
	}
	for _, item := range annualItems {
		annualTotal += item.AmountEUR
	}

	result := Result{
		PurchasePriceEUR: in.PurchasePrice,
		SourceCurrency:   in.SourceCurrency,
		PropertyType:     in.PropertyType,
		IsPrimaCasa:      in.PrimaCasa,
		SellerType:       in.SellerType,
		CadastralValue:   cadastralValue,
		OneTimeCosts: CostCategory{
			Name:        "One-Time Purchase Costs",
			Items:       oneTimeItems,
			SubtotalEUR: oneTimeTotal,
		},
		OngoingAnnualCosts: CostCategory{
			Name:        "Ongoing Annual Costs",
			Items:       annualItems,
			SubtotalEUR: annualTotal,
		},
		TotalOneTimeEUR:        oneTimeTotal,
		TotalAnnualEUR:         annualTotal,
		GrandTotalFirstYearEUR: in.PurchasePrice + oneTimeTotal + annualTotal,
		OneTimePercentage:      oneTimeTotal / in.PurchasePrice * 100,
	}

	if in.SourceCurrency != "EUR" {
		rate := rates[in.SourceCurrency]
		result.ExchangeRate = &rate

		mirror := func(eur float64) *float64 {
			foreign := Convert(eur, "EUR", in.SourceCurrency, rates)
			return &foreign
		}
		result.PurchasePriceForeign = mirror(in.PurchasePrice)
		result.TotalOneTimeForeign = mirror(oneTimeTotal)
		result.TotalAnnualForeign = mirror(annualTotal)
		result.GrandTotalFirstYearForeign = mirror(result.GrandTotalFirstYearEUR)
		result.OneTimeCosts.SubtotalForeign = mirror(oneTimeTotal)
		result.OngoingAnnualCosts.SubtotalForeign = mirror(annualTotal)

		for i := range result.OneTimeCosts.Items {
			result.OneTimeCosts.Items[i].AmountForeign = mirror(result.OneTimeCosts.Items[i].AmountEUR)
		}
		for i := range result.OngoingAnnualCosts.Items {
			result.OngoingAnnualCosts.Items[i].AmountForeign = mirror(result.OngoingAnnualCosts.Items[i].AmountEUR)
		}
	}

	notes := append(oneTimeNotes, annualNotes...)
	notes = append(notes, "All calculations are estimates. Consult a notary or commercialista for exact figures.")
	if in.CadastralIncome == nil || *in.CadastralIncome <= 0 {
		notes = append(notes, "Cadastral value estimated at 40% of purchase price. Provide actual cadastral income for accuracy.")
	}
	result.Notes = notes

	return result
}
