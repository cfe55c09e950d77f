package company

import (
	"math"
	"strings"
)

// RiskDisclaimer сопровождает любое отображение рискового скора
const RiskDisclaimer = "Rizikové skóre je orientačný heuristický ukazovateľ vypočítaný z verejne dostupných údajov. Nejde o úverové hodnotenie ani právne posúdenie."

const (
	riskBase       = 2.0
	riskMin        = 0.0
	riskMax        = 10.0
	riskDissolving = 5.0
	riskNoStaff    = 1.0
	riskVirtual    = 2.0
	riskNoRevenue  = 1.0
	riskLoss       = 1.0
)

// Фрагменты статуса, указывающие на ликвидацию, прекращение или банкротство
var distressMarkers = []string{"likvidác", "zrušen", "konkurz"}

// Level уровень риска для отчетов
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// RiskScore вычисляет эвристический скор, когда бэкенд не прислал свой.
// Всегда возвращает значение в [0, 10]; для пустой записи это 2.
func RiskScore(raw map[string]any) float64 {
	score := riskBase
	if raw == nil {
		return score
	}

	status := strings.ToLower(stringField(raw, statusAliases...))
	for _, marker := range distressMarkers {
		if strings.Contains(status, marker) {
			score += riskDissolving
			break
		}
	}

	if anyExactly(raw, 0, employeesAliases...) {
		score += riskNoStaff
	}
	if IsVirtualSeat(stringField(raw, addressAliases...)) {
		score += riskVirtual
	}
	if anyExactly(raw, 0, revenueAliases...) {
		score += riskNoRevenue
	}
	if profit := numberField(raw, profitAliases...); profit != nil && *profit < 0 {
		score += riskLoss
	}

	return ClampRisk(score)
}

// ClampRisk ограничивает скор диапазоном [0, 10]
func ClampRisk(score float64) float64 {
	if math.IsNaN(score) {
		return riskMin
	}
	if score < riskMin {
		return riskMin
	}
	if score > riskMax {
		return riskMax
	}
	return score
}

// RiskLevel раскладывает скор по уровням для раскраски отчетов
func RiskLevel(score float64) Level {
	switch {
	case score >= 7:
		return LevelHigh
	case score >= 4:
		return LevelMedium
	default:
		return LevelLow
	}
}

// anyExactly проверяет, что хотя бы один из псевдонимов содержит число, равное want
func anyExactly(raw map[string]any, want float64, aliases ...string) bool {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if f, isNum := toNumber(v); isNum && f == want {
			return true
		}
	}
	return false
}
