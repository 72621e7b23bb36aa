package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/iwvelando/startup-forecast/internal/model"
)

func sampleRows() []model.Row {
	return []model.Row{
		{
			Month:        0,
			AdsSpend:     500,
			RevenueTotal: 1234.56,
			RevenueTTM:   1234.56,
			Cash:         98765.43,
			Debt:         0,
			FreeActive:   12,
			ProActive:    3,
			Milestone:    0,
			ProPrice:     3500,
			EntPrice:     20000,
			Valuation:    22222.22,
		},
		{
			Month:        1,
			AdsSpend:     600,
			RevenueTotal: 2000,
			RevenueTTM:   3234.56,
			Cash:         97000.10,
			Debt:         100000,
			FreeActive:   20,
			ProActive:    5,
			Milestone:    1,
			ProPrice:     4200,
			EntPrice:     24000,
			Valuation:    33333.33,
		},
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, sampleRows()); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse emitted csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count = %d, expected header plus 2 rows", len(records))
	}

	header := records[0]
	if header[0] != "month" {
		t.Errorf("header[0] = %q, expected month", header[0])
	}
	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			t.Errorf("row width = %d, expected %d", len(rec), len(header))
		}
	}

	if records[1][0] != "0" || records[2][0] != "1" {
		t.Errorf("month column = (%q, %q), expected (0, 1)", records[1][0], records[2][0])
	}

	// Currency fields carry two decimals.
	idx := indexOf(header, "cash")
	if idx < 0 {
		t.Fatal("cash column missing")
	}
	if records[1][idx] != "98765.43" {
		t.Errorf("cash = %q, expected 98765.43", records[1][idx])
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleRows())

	out := buf.String()
	if !strings.Contains(out, "Month") {
		t.Error("expected table header in pretty output")
	}
	// The printer groups thousands.
	if !strings.Contains(out, "98,765.43") {
		t.Errorf("expected grouped cash value in output, got:\n%s", out)
	}
}

func TestPrettySummary(t *testing.T) {
	var buf bytes.Buffer
	PrettySummary(&buf, sampleRows())

	out := buf.String()
	for _, want := range []string{"Months simulated: 2", "Minimum cash", "Valuation"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q, got:\n%s", want, out)
		}
	}

	// Minimum cash is the trajectory minimum, not the final value.
	if !strings.Contains(out, "97,000.10") {
		t.Errorf("expected minimum cash 97,000.10 in output, got:\n%s", out)
	}

	buf.Reset()
	PrettySummary(&buf, nil)
	if buf.Len() != 0 {
		t.Error("expected no output for empty history")
	}
}

func indexOf(fields []string, name string) int {
	for i, f := range fields {
		if f == name {
			return i
		}
	}
	return -1
}
