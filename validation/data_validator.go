// Package validation provides data validation functionality for the symptom finder.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/giygas/chobisangyak/catalog"
	"github.com/giygas/chobisangyak/catalog/entities"
	"github.com/giygas/chobisangyak/interfaces"
	"github.com/giygas/chobisangyak/logging"
	"github.com/go-playground/validator/v10"
)

// Dangerous patterns as strings (faster than regex for simple substring matching)
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"eval(", "expression(", "url(", "@import",
	"' or ", "\" or ", "union select", "drop table", "--", "/*", "*/",
	"; ", "| ", "`", "$(", "${",
	"../", "..\\", "%2e%2e", "file://",
}

// maxInputRunes bounds product names accepted from clients
const maxInputRunes = 100

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct {
	validate *validator.Validate
}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateRecord checks the struct tags of a normalized record
func (v *DataValidatorImpl) ValidateRecord(record *entities.DrugRecord) error {
	if record == nil {
		return fmt.Errorf("record is nil")
	}
	return v.validate.Struct(record)
}

// ReportDataQuality generates a data quality report with all issues found.
// Records failing validation are reported, never removed: the table keeps
// one record per complete source row.
func (v *DataValidatorImpl) ReportDataQuality(table *entities.Table, stats entities.IngestStats) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		Ingest:           stats,
		InvalidImageURLs: []string{},
	}

	if table == nil {
		return report
	}

	for i := range table.Records {
		record := &table.Records[i]

		if catalog.IsUnrestricted(record) {
			report.UnrestrictedRecords++
		} else {
			report.RestrictedRecords++
		}

		if record.Efficacy == "" {
			report.RecordsWithEmptyEffect++
		}

		err := v.ValidateRecord(record)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			logging.Warn("Unexpected record validation error", "error", err)
			continue
		}

		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Name":
				report.RecordsWithoutName++
			case "PurchaseChannel":
				report.RecordsWithoutChannel++
			case "ImageURL":
				report.InvalidImageURLs = append(report.InvalidImageURLs, record.Name)
			}
		}
	}

	return report
}

// ValidateSymptom checks that input is one of the supported symptoms.
// No normalization is applied: the token must match exactly.
func (v *DataValidatorImpl) ValidateSymptom(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("symptom cannot be empty")
	}

	if _, ok := catalog.ParseSymptom(input); !ok {
		return fmt.Errorf("unsupported symptom: %s", input)
	}

	return nil
}

// ValidateInput validates free-form user input such as product names
func ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if !utf8.ValidString(input) {
		return fmt.Errorf("input is not valid UTF-8")
	}

	if utf8.RuneCountInString(input) > maxInputRunes {
		return fmt.Errorf("input too long: maximum %d characters", maxInputRunes)
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	return nil
}
