package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/italypros/directory-api/internal/database"
)

// categorySeed mirrors the launch category set. Re-running the seeder is safe:
// existing rows are left untouched.
type categorySeed struct {
	id           string
	nameEN       string
	nameIT       string
	pluralEN     string
	description  string
	whyNeeded    string
	typicalFees  string
	icon         string
	displayOrder int
}

var categoriesData = []categorySeed{
	{
		id:           "lawyer",
		nameEN:       "Lawyer",
		nameIT:       "Avvocato",
		pluralEN:     "Lawyers",
		description:  "Real estate lawyers help foreign buyers navigate Italian property law, review contracts, conduct due diligence, and can represent you with power of attorney.",
		whyNeeded:    "Italian property contracts favor sellers. A lawyer protects your interests and can identify issues before you commit.",
		typicalFees:  "€1,500 - €3,000 for a standard purchase, or 1-1.5% of property value",
		icon:         "Scale",
		displayOrder: 1,
	},
	{
		id:           "notary",
		nameEN:       "Notary",
		nameIT:       "Notaio",
		pluralEN:     "Notaries",
		description:  "Notaries are public officials required for all property transactions in Italy. They verify legal compliance and register the deed.",
		whyNeeded:    "Legally required. The notary ensures the transaction is valid and registers ownership transfer.",
		typicalFees:  "1-2.5% of declared property value (paid by buyer)",
		icon:         "Stamp",
		displayOrder: 2,
	},
	{
		id:           "geometra",
		nameEN:       "Surveyor/Geometra",
		nameIT:       "Geometra",
		pluralEN:     "Surveyors",
		description:  "Geometri are uniquely Italian professionals combining surveyor, inspector, and permit specialist roles. They verify property compliance and handle bureaucracy.",
		whyNeeded:    "Essential for checking building compliance, catasto accuracy, and managing renovation permits.",
		typicalFees:  "€300 - €1,500 depending on property complexity",
		icon:         "Ruler",
		displayOrder: 3,
	},
	{
		id:           "architect",
		nameEN:       "Architect",
		nameIT:       "Architetto",
		pluralEN:     "Architects",
		description:  "Architects design renovations and new constructions, obtain permits, and oversee building work.",
		whyNeeded:    "Required for significant renovations or when design expertise is needed. Can manage the entire project.",
		typicalFees:  "8-15% of construction costs, or fixed fee for smaller projects",
		icon:         "Compass",
		displayOrder: 4,
	},
	{
		id:           "real_estate_agent",
		nameEN:       "Real Estate Agent",
		nameIT:       "Agente Immobiliare",
		pluralEN:     "Real Estate Agents",
		description:  "Licensed agents help find properties, arrange viewings, and facilitate negotiations between buyers and sellers.",
		whyNeeded:    "Access to listings, local market knowledge, and negotiation support. Some specialize in foreign buyers.",
		typicalFees:  "3-4% of purchase price + 22% VAT (paid by buyer)",
		icon:         "Home",
		displayOrder: 5,
	},
	{
		id:           "accountant",
		nameEN:       "Accountant",
		nameIT:       "Commercialista",
		pluralEN:     "Accountants",
		description:  "Commercialisti handle tax registration, annual declarations, rental income reporting, and tax optimization strategies.",
		whyNeeded:    "Italian tax obligations are complex. Essential for rental income, residency tax implications, and ongoing compliance.",
		typicalFees:  "€500 - €2,000/year for property tax management",
		icon:         "Calculator",
		displayOrder: 6,
	},
	{
		id:           "property_manager",
		nameEN:       "Property Manager",
		nameIT:       "Property Manager",
		pluralEN:     "Property Managers",
		description:  "Property managers handle rentals, maintenance, bill payments, and property oversight for absentee owners.",
		whyNeeded:    "Essential if you don't live in Italy full-time. Handles guests, emergencies, and regular maintenance.",
		typicalFees:  "15-25% of rental income, or fixed monthly fee",
		icon:         "Key",
		displayOrder: 7,
	},
	{
		id:           "contractor",
		nameEN:       "Contractor/Builder",
		nameIT:       "Impresa Edile",
		pluralEN:     "Contractors",
		description:  "Building contractors handle renovation and construction work, from minor repairs to complete restorations.",
		whyNeeded:    "Quality contractors who understand foreign client expectations and communicate in English are valuable.",
		typicalFees:  "Varies by project scope. Get multiple quotes.",
		icon:         "Hammer",
		displayOrder: 8,
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	inserted := 0
	for _, cat := range categoriesData {
		var exists int
		if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE id = ?", cat.id).Scan(&exists); err != nil {
			log.Fatalf("Failed to check category %s: %v", cat.id, err)
		}
		if exists > 0 {
			continue
		}

		_, err := db.Exec(`
			INSERT INTO categories
			(id, name_en, name_it, plural_en, description, why_needed, typical_fees, icon, display_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cat.id, cat.nameEN, cat.nameIT, cat.pluralEN, cat.description,
			cat.whyNeeded, cat.typicalFees, cat.icon, cat.displayOrder, time.Now())
		if err != nil {
			log.Fatalf("Failed to insert category %s: %v", cat.id, err)
		}
		inserted++
	}

	log.Printf("Seed complete: %d categories inserted, %d already present.", inserted, len(categoriesData)-inserted)
}
