package catalog

import (
	"strings"

	"github.com/giygas/chobisangyak/catalog/entities"
)

// ConvenienceMarker identifies products sold outside pharmacies
const ConvenienceMarker = "편의점"

// Symptom is a query token from the supported vocabulary
type Symptom string

// Supported symptoms, in display order
const (
	Headache      Symptom = "두통"
	Toothache     Symptom = "치통"
	MenstrualPain Symptom = "생리통"
	MusclePain    Symptom = "근육통"
	Indigestion   Symptom = "소화불량"
	Cold          Symptom = "감기"
	Fever         Symptom = "발열"
	Bruise        Symptom = "타박상"
)

var vocabulary = []Symptom{
	Headache, Toothache, MenstrualPain, MusclePain, Indigestion, Cold, Fever, Bruise,
}

// Vocabulary returns a copy of the supported symptoms in display order
func Vocabulary() []Symptom {
	out := make([]Symptom, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// ParseSymptom reports whether s is a supported symptom
func ParseSymptom(s string) (Symptom, bool) {
	for _, symptom := range vocabulary {
		if string(symptom) == s {
			return symptom, true
		}
	}
	return "", false
}

// Result holds the records treating one symptom, split by sale channel
type Result struct {
	Symptom      Symptom               `json:"symptom"`
	Unrestricted []entities.DrugRecord `json:"unrestricted"`
	Restricted   []entities.DrugRecord `json:"restricted"`
	TotalMatches int                   `json:"total_matches"`
}

// IsUnrestricted reports whether the record can be bought in convenience stores
func IsUnrestricted(record *entities.DrugRecord) bool {
	return strings.Contains(record.PurchaseChannel, ConvenienceMarker)
}

// Search selects the records whose efficacy text contains the symptom and
// splits them into the unrestricted and restricted channels. Matching is a
// case-sensitive substring test and table order is kept in both buckets.
func Search(table *entities.Table, symptom Symptom) Result {
	result := Result{
		Symptom:      symptom,
		Unrestricted: []entities.DrugRecord{},
		Restricted:   []entities.DrugRecord{},
	}

	if table == nil {
		return result
	}

	token := string(symptom)
	for i := range table.Records {
		record := &table.Records[i]
		if !strings.Contains(record.Efficacy, token) {
			continue
		}

		if IsUnrestricted(record) {
			result.Unrestricted = append(result.Unrestricted, *record)
		} else {
			result.Restricted = append(result.Restricted, *record)
		}
	}

	result.TotalMatches = len(result.Unrestricted) + len(result.Restricted)
	return result
}
