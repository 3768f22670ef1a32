package models

// Settings is the singleton company identity record, consumed read-only by
// document rendering.
type Settings struct {
	CompanyName       string `json:"companyName"`
	CompanyActivity   string `json:"companyActivity"`
	CompanyAddress    string `json:"companyAddress"`
	CompanyStat       string `json:"companyStat"`
	CompanyNif        string `json:"companyNif"`
	CompanyPhone      string `json:"companyPhone"`
	ResponsibleNumber string `json:"responsibleNumber"`
}

// DefaultSettings returns the record seeded on first use.
func DefaultSettings() Settings {
	return Settings{
		CompanyName:     "FOIBENNY TSARA TOLES BY PASS",
		CompanyActivity: "VENTES DES MATÉRIAUX DE CONSTRUCTION",
		CompanyAddress:  "Près Lavage Raitra",
		CompanyStat:     "47521201201901044",
		CompanyNif:      "6003278760",
		CompanyPhone:    "0345476294 / 0389015842",
	}
}
