package validation

import (
	"strings"
	"testing"

	"github.com/giygas/chobisangyak/catalog/entities"
	"github.com/google/go-cmp/cmp"
)

func TestValidateRecord(t *testing.T) {
	validator := NewDataValidator()

	tests := []struct {
		name    string
		record  *entities.DrugRecord
		wantErr bool
	}{
		{"valid record", &entities.DrugRecord{Name: "A", PurchaseChannel: "편의점"}, false},
		{"valid image url", &entities.DrugRecord{Name: "A", PurchaseChannel: "약국", ImageURL: "https://img.example/a.png"}, false},
		{"missing name", &entities.DrugRecord{PurchaseChannel: "편의점"}, true},
		{"missing channel", &entities.DrugRecord{Name: "A"}, true},
		{"invalid image url", &entities.DrugRecord{Name: "A", PurchaseChannel: "약국", ImageURL: "not a url"}, true},
		{"nil record", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateRecord(tt.record)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReportDataQuality(t *testing.T) {
	validator := NewDataValidator()
	table := &entities.Table{Records: []entities.DrugRecord{
		{Name: "A", Efficacy: "두통", PurchaseChannel: "편의점, 약국"},
		{Name: "B", Efficacy: "", PurchaseChannel: "약국 전용"},
		{Name: "C", Efficacy: "치통", PurchaseChannel: "편의점", ImageURL: "broken"},
		{Name: "", Efficacy: "감기", PurchaseChannel: ""},
	}}
	stats := entities.IngestStats{TotalRows: 6, KeptRows: 4, MissingEfficacy: 2}

	report := validator.ReportDataQuality(table, stats)

	if report.Ingest != stats {
		t.Errorf("Expected ingest stats to be carried, got %+v", report.Ingest)
	}
	if report.UnrestrictedRecords != 2 || report.RestrictedRecords != 2 {
		t.Errorf("Unexpected channel counts: %d unrestricted, %d restricted",
			report.UnrestrictedRecords, report.RestrictedRecords)
	}
	if report.RecordsWithoutName != 1 {
		t.Errorf("Expected 1 record without name, got %d", report.RecordsWithoutName)
	}
	if report.RecordsWithoutChannel != 1 {
		t.Errorf("Expected 1 record without channel, got %d", report.RecordsWithoutChannel)
	}
	if report.RecordsWithEmptyEffect != 1 {
		t.Errorf("Expected 1 record with empty efficacy, got %d", report.RecordsWithEmptyEffect)
	}
	if diff := cmp.Diff([]string{"C"}, report.InvalidImageURLs); diff != "" {
		t.Errorf("invalid image urls mismatch (-want +got):\n%s", diff)
	}
	if len(table.Records) != 4 {
		t.Error("Report must not modify the table")
	}
}

func TestReportDataQualityNilTable(t *testing.T) {
	report := NewDataValidator().ReportDataQuality(nil, entities.IngestStats{})
	if report == nil {
		t.Fatal("Expected a report")
	}
	if report.UnrestrictedRecords != 0 || report.RestrictedRecords != 0 || len(report.InvalidImageURLs) != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}

func TestValidateSymptom(t *testing.T) {
	validator := NewDataValidator()

	valid := []string{"두통", "치통", "생리통", "근육통", "소화불량", "감기", "발열", "타박상"}
	for _, s := range valid {
		if err := validator.ValidateSymptom(s); err != nil {
			t.Errorf("ValidateSymptom(%q) unexpected error: %v", s, err)
		}
	}

	invalid := []string{"", "   ", "선택하세요", " 두통", "두통,치통", "headache"}
	for _, s := range invalid {
		if err := validator.ValidateSymptom(s); err == nil {
			t.Errorf("ValidateSymptom(%q) expected error", s)
		}
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"korean product name", "타이레놀정500밀리그람(아세트아미노펜)", false},
		{"with spaces", "어린이 부루펜 시럽", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("가", maxInputRunes+1), true},
		{"exactly max", strings.Repeat("가", maxInputRunes), false},
		{"script tag", "<script>alert(1)</script>", true},
		{"sql injection", "a' or 1=1", true},
		{"path traversal", "../etc/passwd", true},
		{"invalid utf8", string([]byte{0xff, 0xfe}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInput(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
