package company

import "strings"

// virtualSeatIndicators признаки адреса виртуального офиса или коворкинга
var virtualSeatIndicators = []string{
	"TOWER",
	"BUSINESS CENTER",
	"VIRTUAL",
	"COWORKING",
	"REGUS",
	"SPACES",
	"WEHUB",
}

// IsVirtualSeat сообщает, похож ли адрес на виртуальное сидло
func IsVirtualSeat(address string) bool {
	if address == "" {
		return false
	}
	upper := strings.ToUpper(address)
	for _, ind := range virtualSeatIndicators {
		if strings.Contains(upper, ind) {
			return true
		}
	}
	return false
}
