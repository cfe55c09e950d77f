package company

import "strings"

// Location округ и край, определенные по PSČ
type Location struct {
	District string `json:"district"`
	Region   string `json:"region"`
}

const (
	regionBratislava     = "Bratislavský kraj"
	regionKosice         = "Košický kraj"
	regionZilina         = "Žilinský kraj"
	regionNitra          = "Nitriansky kraj"
	regionTrnava         = "Trnavský kraj"
	regionBanskaBystrica = "Banskobystrický kraj"
	regionPresov         = "Prešovský kraj"
	regionTrencin        = "Trenčiansky kraj"
)

// postalCodes базовый набор словацких PSČ
var postalCodes = map[string]Location{
	"81101": {"Bratislava I", regionBratislava},
	"81102": {"Bratislava I", regionBratislava},
	"81103": {"Bratislava I", regionBratislava},
	"81104": {"Bratislava I", regionBratislava},
	"81105": {"Bratislava I", regionBratislava},
	"81106": {"Bratislava I", regionBratislava},
	"81107": {"Bratislava I", regionBratislava},
	"81108": {"Bratislava I", regionBratislava},
	"82101": {"Bratislava II", regionBratislava},
	"82102": {"Bratislava II", regionBratislava},
	"82103": {"Bratislava II", regionBratislava},
	"82104": {"Bratislava II", regionBratislava},
	"82105": {"Bratislava II", regionBratislava},
	"83101": {"Bratislava III", regionBratislava},
	"83102": {"Bratislava III", regionBratislava},
	"83103": {"Bratislava III", regionBratislava},
	"84101": {"Bratislava IV", regionBratislava},
	"84102": {"Bratislava IV", regionBratislava},
	"85101": {"Bratislava V", regionBratislava},

	"04001": {"Košice I", regionKosice},
	"04011": {"Košice I", regionKosice},
	"04013": {"Košice I", regionKosice},

	"01001": {"Žilina", regionZilina},
	"01007": {"Žilina", regionZilina},

	"94901": {"Nitra", regionNitra},
	"94911": {"Nitra", regionNitra},

	"91701": {"Trnava", regionTrnava},
	"91708": {"Trnava", regionTrnava},

	"97401": {"Banská Bystrica", regionBanskaBystrica},
	"97404": {"Banská Bystrica", regionBanskaBystrica},

	"08001": {"Prešov", regionPresov},

	"91101": {"Trenčín", regionTrencin},
	"91105": {"Trenčín", regionTrencin},
}

// ResolveRegion определяет округ и край по PSČ ("811 08" и "81108" эквивалентны)
func ResolveRegion(postalCode string) (Location, bool) {
	normalized := strings.Join(strings.Fields(postalCode), "")
	if normalized == "" {
		return Location{}, false
	}
	loc, ok := postalCodes[normalized]
	return loc, ok
}
