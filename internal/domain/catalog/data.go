package catalog

// factorSets holds the shipped catalog, keyed by ISO 3166-1 alpha-2
// country code. Factors are spend-based screening values in tCO2e per
// unit currency of the set.
var factorSets = map[string]*FactorSet{
	"US": {
		Model:     "USEEIO v2.0",
		Geography: "United States",
		Year:      2022,
		Currency:  "USD",
		Source:    "US EPA, Supply Chain Greenhouse Gas Emission Factors v1.2 (USEEIO)",
		Categories: []Category{
			{ID: "professional_services", Label: "Professional services", SectorRef: "BEA 5412OO", Factor: f("0.000092")},
			{ID: "it_services", Label: "IT & software services", SectorRef: "BEA 5415OO", Factor: f("0.000064")},
			{ID: "logistics", Label: "Freight & logistics", SectorRef: "BEA 484000", Factor: f("0.000521")},
			{ID: "office_supplies", Label: "Office supplies & paper", SectorRef: "BEA 322230", Factor: f("0.000387")},
			{ID: "construction", Label: "Construction & maintenance", SectorRef: "BEA 230301", Factor: f("0.000291")},
			{ID: "food_beverage", Label: "Food & beverage", SectorRef: "BEA 311410", Factor: f("0.000486")},
			{ID: "machinery", Label: "Machinery & equipment", SectorRef: "BEA 333120", Factor: f("0.000344")},
			{ID: "other_goods", Label: "Other purchased goods", SectorRef: "BEA 339990", Factor: f("0.000312")},
		},
	},
	"GB": {
		Model:     "UK SEF 2023",
		Geography: "United Kingdom",
		Year:      2023,
		Currency:  "GBP",
		Source:    "UK DEFRA/BEIS, UK Government GHG Conversion Factors for Company Reporting 2023, indirect procurement tables",
		Categories: []Category{
			{ID: "professional_services", Label: "Professional services", SectorRef: "SIC 69-70", Factor: f("0.000078")},
			{ID: "it_services", Label: "IT & software services", SectorRef: "SIC 62-63", Factor: f("0.000055")},
			{ID: "logistics", Label: "Freight & logistics", SectorRef: "SIC 49-52", Factor: f("0.000465")},
			{ID: "office_supplies", Label: "Office supplies & paper", SectorRef: "SIC 17", Factor: f("0.000349")},
			{ID: "construction", Label: "Construction & maintenance", SectorRef: "SIC 41-43", Factor: f("0.000267")},
			{ID: "food_beverage", Label: "Food & beverage", SectorRef: "SIC 10-11", Factor: f("0.000441")},
			{ID: "machinery", Label: "Machinery & equipment", SectorRef: "SIC 28", Factor: f("0.000318")},
			{ID: "other_goods", Label: "Other purchased goods", SectorRef: "SIC 32", Factor: f("0.000286")},
		},
	},
	"DE": {
		Model:     "EXIOBASE 3.8 screening",
		Geography: "Germany",
		Year:      2022,
		Currency:  "EUR",
		Source:    "EXIOBASE 3.8.2 environmentally extended input-output tables, DE aggregation",
		Categories: []Category{
			{ID: "professional_services", Label: "Professional services", SectorRef: "NACE M69-M70", Factor: f("0.000083")},
			{ID: "it_services", Label: "IT & software services", SectorRef: "NACE J62-J63", Factor: f("0.000059")},
			{ID: "logistics", Label: "Freight & logistics", SectorRef: "NACE H49-H52", Factor: f("0.000498")},
			{ID: "office_supplies", Label: "Office supplies & paper", SectorRef: "NACE C17", Factor: f("0.000362")},
			{ID: "construction", Label: "Construction & maintenance", SectorRef: "NACE F41-F43", Factor: f("0.000274")},
			{ID: "food_beverage", Label: "Food & beverage", SectorRef: "NACE C10-C11", Factor: f("0.000459")},
			{ID: "machinery", Label: "Machinery & equipment", SectorRef: "NACE C28", Factor: f("0.000329")},
			{ID: "other_goods", Label: "Other purchased goods", SectorRef: "NACE C32", Factor: f("0.000297")},
		},
	},
}
