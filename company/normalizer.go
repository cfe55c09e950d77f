package company

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Псевдонимы полей в порядке приоритета. Первый присутствующий ключ с не-null значением побеждает.
var (
	identifierAliases  = []string{"ico", "identifier"}
	dicAliases         = []string{"dic"}
	icDphAliases       = []string{"ic_dph", "icdph", "icDph"}
	nameAliases        = []string{"name", "nazov", "obchodne_meno"}
	legalFormAliases   = []string{"legal_form", "pravna_forma", "legalForm"}
	statusAliases      = []string{"status", "stav"}
	foundedAliases     = []string{"founded", "datum_zalozenia", "datumVzniku"}
	addressAliases     = []string{"address", "adresa", "sidlo"}
	cityAliases        = []string{"city", "mesto"}
	postalCodeAliases  = []string{"postal_code", "psc", "postalCode"}
	regionAliases      = []string{"region", "kraj"}
	districtAliases    = []string{"district", "okres"}
	countryAliases     = []string{"country", "krajina"}
	executiveAliases   = []string{"executives", "konatelia", "statutarny_organ"}
	shareholderAliases = []string{"shareholders", "spolocnici"}
	revenueAliases     = []string{"revenue", "trzby"}
	profitAliases      = []string{"profit", "zisk"}
	employeesAliases   = []string{"employees", "pocet_zamestnancov"}
	financialAliases   = []string{"financial_data", "financialData"}
	riskScoreAliases   = []string{"risk_score", "riskScore"}
	virtualSeatAliases = []string{"virtual_seat", "virtualSeat"}
	qualityAliases     = []string{"data_quality", "dataQuality"}
	relatedAliases     = []string{"related_companies", "relatedCompanies"}
	sourceAliases      = []string{"source"}
	updatedAliases     = []string{"last_updated", "lastUpdated"}
	countryDataAliases = []string{"country_specific_data", "countrySpecificData"}

	partyNameAliases   = []string{"meno", "name", "cele_meno", "full_name"}
	relatedNameAliases = []string{"name", "nazov", "obchodne_meno", "label"}
)

// Полные названия стран, которые встречаются вместо ISO-кода
var countryNames = map[string]string{
	"SLOVAKIA":       "SK",
	"SLOVENSKO":      "SK",
	"CZECHIA":        "CZ",
	"CZECH REPUBLIC": "CZ",
	"ČESKO":          "CZ",
	"POLAND":         "PL",
	"POLSKA":         "PL",
	"HUNGARY":        "HU",
	"MAGYARORSZÁG":   "HU",
}

// Normalizer приводит записи разных версий API к единому виду Company
type Normalizer struct {
	// Now используется для lastUpdated, если источник его не передал
	Now func() time.Time
	// ResolveRegions заполняет region/district по PSČ для словацких записей
	ResolveRegions bool
}

// NewNormalizer создает нормализатор с системными часами
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Now:            time.Now,
		ResolveRegions: true,
	}
}

var defaultNormalizer = NewNormalizer()

// Normalize нормализует сырую запись нормализатором по умолчанию
func Normalize(raw map[string]any) *Company {
	return defaultNormalizer.Normalize(raw)
}

// NormalizeAll нормализует список записей, пропуская пустые
func NormalizeAll(raws []map[string]any) []Company {
	out := make([]Company, 0, len(raws))
	for _, raw := range raws {
		if c := Normalize(raw); c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// Normalize строит Company из произвольного JSON-объекта.
// Для nil возвращает nil. Типы значений не проверяются и не исправляются.
func (n *Normalizer) Normalize(raw map[string]any) *Company {
	if raw == nil {
		return nil
	}

	c := &Company{
		Identifier: stringField(raw, identifierAliases...),
		DIC:        stringField(raw, dicAliases...),
		ICDPH:      stringField(raw, icDphAliases...),

		Name:      stringOr(raw, DefaultName, nameAliases...),
		LegalForm: stringField(raw, legalFormAliases...),
		Status:    stringOr(raw, DefaultStatus, statusAliases...),
		Founded:   stringField(raw, foundedAliases...),

		Address:    stringField(raw, addressAliases...),
		City:       stringField(raw, cityAliases...),
		PostalCode: stringField(raw, postalCodeAliases...),
		Region:     stringField(raw, regionAliases...),
		District:   stringField(raw, districtAliases...),
		Country:    NormalizeCountry(stringField(raw, countryAliases...)),

		Executives:   parties(raw, executiveAliases...),
		Shareholders: parties(raw, shareholderAliases...),

		Revenue:       numberField(raw, revenueAliases...),
		Profit:        numberField(raw, profitAliases...),
		Employees:     numberField(raw, employeesAliases...),
		FinancialData: objectField(raw, financialAliases...),

		DataQuality: stringOr(raw, DefaultDataQuality, qualityAliases...),

		RelatedCompanies: relatedCompanies(raw, relatedAliases...),

		Source:              stringOr(raw, DefaultSource, sourceAliases...),
		LastUpdated:         stringField(raw, updatedAliases...),
		CountrySpecificData: objectField(raw, countryDataAliases...),
	}

	if score := numberField(raw, riskScoreAliases...); score != nil {
		c.RiskScore = ClampRisk(*score)
	} else {
		c.RiskScore = RiskScore(raw)
	}

	if v, ok := lookup(raw, virtualSeatAliases...); ok {
		if b, isBool := v.(bool); isBool {
			c.VirtualSeat = b
		} else {
			c.VirtualSeat = IsVirtualSeat(c.Address)
		}
	} else {
		c.VirtualSeat = IsVirtualSeat(c.Address)
	}

	if c.LastUpdated == "" {
		now := time.Now
		if n != nil && n.Now != nil {
			now = n.Now
		}
		c.LastUpdated = now().UTC().Format(time.RFC3339)
	}

	if n != nil && n.ResolveRegions && c.Country == "SK" && c.Region == "" && c.District == "" {
		if loc, ok := ResolveRegion(c.PostalCode); ok {
			c.Region = loc.Region
			c.District = loc.District
		}
	}

	return c
}

// NormalizeCountry приводит страну к двухбуквенному коду, по умолчанию SK
func NormalizeCountry(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if code, ok := countryNames[country]; ok {
		return code
	}
	if len(country) == 2 && isASCIILetter(country[0]) && isASCIILetter(country[1]) {
		return country
	}
	return DefaultCountry
}

func isASCIILetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// lookup возвращает значение первого присутствующего псевдонима
func lookup(raw map[string]any, aliases ...string) (any, bool) {
	for _, key := range aliases {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(raw map[string]any, aliases ...string) string {
	v, ok := lookup(raw, aliases...)
	if !ok {
		return ""
	}
	return toString(v)
}

func stringOr(raw map[string]any, def string, aliases ...string) string {
	if _, ok := lookup(raw, aliases...); !ok {
		return def
	}
	return stringField(raw, aliases...)
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func numberField(raw map[string]any, aliases ...string) *float64 {
	v, ok := lookup(raw, aliases...)
	if !ok {
		return nil
	}
	f, ok := toNumber(v)
	if !ok {
		return nil
	}
	return &f
}

// toNumber принимает только числовые JSON-значения, строки не приводятся
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func objectField(raw map[string]any, aliases ...string) map[string]any {
	v, ok := lookup(raw, aliases...)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

func parties(raw map[string]any, aliases ...string) []Party {
	v, ok := lookup(raw, aliases...)
	if !ok {
		return []Party{}
	}

	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	default:
		items = []any{t}
	}

	out := make([]Party, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case nil:
			continue
		case string:
			out = append(out, Party{Name: t})
		case map[string]any:
			out = append(out, Party{Name: stringField(t, partyNameAliases...), Record: t})
		default:
			out = append(out, Party{Name: toString(t)})
		}
	}
	return out
}

func relatedCompanies(raw map[string]any, aliases ...string) []Related {
	v, ok := lookup(raw, aliases...)
	if !ok {
		return []Related{}
	}
	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}

	out := make([]Related, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case nil:
			continue
		case string:
			out = append(out, Related{Name: t})
		case map[string]any:
			rel := Related{
				Identifier: stringField(t, identifierAliases...),
				Name:       stringField(t, relatedNameAliases...),
			}
			if country := stringField(t, countryAliases...); country != "" {
				rel.Country = NormalizeCountry(country)
			}
			out = append(out, rel)
		default:
			out = append(out, Related{Name: toString(t)})
		}
	}
	return out
}
