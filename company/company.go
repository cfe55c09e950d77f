package company

import "maps"

// Значения по умолчанию для неполных записей
const (
	DefaultCountry     = "SK"
	DefaultName        = "Neznáma firma"
	DefaultStatus      = "Aktívna"
	DefaultSource      = "API"
	DefaultDataQuality = "fair"
)

// Company нормализованная запись юридического лица
type Company struct {
	Identifier string `json:"ico"`
	DIC        string `json:"dic"`
	ICDPH      string `json:"icDph"`

	Name      string `json:"name"`
	LegalForm string `json:"legalForm"`
	Status    string `json:"status"`
	Founded   string `json:"founded"`

	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Region     string `json:"region"`
	District   string `json:"district"`
	Country    string `json:"country"`

	Executives   []Party `json:"executives"`
	Shareholders []Party `json:"shareholders"`

	Revenue       *float64       `json:"revenue"`
	Profit        *float64       `json:"profit"`
	Employees     *float64       `json:"employees"`
	FinancialData map[string]any `json:"financialData,omitempty"`

	RiskScore   float64 `json:"riskScore"`
	VirtualSeat bool    `json:"virtualSeat"`
	DataQuality string  `json:"dataQuality"`

	RelatedCompanies []Related `json:"relatedCompanies"`

	Source              string         `json:"source"`
	LastUpdated         string         `json:"lastUpdated"`
	CountrySpecificData map[string]any `json:"countrySpecificData,omitempty"`
}

// Party участник компании (konateľ или spoločník): либо просто имя, либо вложенная запись
type Party struct {
	Name   string         `json:"name"`
	Record map[string]any `json:"record,omitempty"`
}

// Related заглушка связанной компании
type Related struct {
	Identifier string `json:"ico,omitempty"`
	Name       string `json:"name"`
	Country    string `json:"country,omitempty"`
}

// Clone возвращает глубокую копию записи
func (c Company) Clone() Company {
	out := c
	out.Executives = cloneParties(c.Executives)
	out.Shareholders = cloneParties(c.Shareholders)
	out.RelatedCompanies = append([]Related(nil), c.RelatedCompanies...)
	out.Revenue = cloneFloat(c.Revenue)
	out.Profit = cloneFloat(c.Profit)
	out.Employees = cloneFloat(c.Employees)
	out.FinancialData = maps.Clone(c.FinancialData)
	out.CountrySpecificData = maps.Clone(c.CountrySpecificData)
	return out
}

func cloneParties(in []Party) []Party {
	if in == nil {
		return nil
	}
	out := make([]Party, len(in))
	for i, p := range in {
		out[i] = Party{Name: p.Name, Record: maps.Clone(p.Record)}
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	x := *v
	return &x
}
