package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Export treats the sanitized content as an opaque bag of fields; nothing is
// re-validated here. Only the scalar prose fields are flattened into columns.
var exportFields = []struct {
	Label string
	Key   string
}{
	{"General Mood", "generalMood"},
	{"Mood", "mood"},
	{"Day", "day"},
	{"Thoughts", "thoughts"},
	{"Notes", "notes"},
	{"Daily Note", "dailyNote"},
}

// BuildJSON serializes the ordered entries as an indented date-keyed object.
func BuildJSON(entries []map[string]any) ([]byte, error) {
	keyed := make(map[string]map[string]any, len(entries))
	for _, entry := range entries {
		date, _ := entry["date"].(string)
		keyed[date] = entry
	}
	return json.MarshalIndent(keyed, "", "  ")
}

// BuildCSV renders the ordered entries as CSV, one row per day.
func BuildCSV(entries []map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Date"}
	for _, field := range exportFields {
		header = append(header, field.Label)
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		row := []string{stringField(entry, "date")}
		for _, field := range exportFields {
			row = append(row, stringField(entry, field.Key))
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPDF renders the ordered entries as a printable document: a title page
// heading followed by one dated section per entry.
func BuildPDF(entries []map[string]any) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("Journal Export", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "Journal Export")
	pdf.Ln(18)

	for _, entry := range entries {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 9, stringField(entry, "date"))
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "", 11)
		for _, field := range exportFields {
			value := stringField(entry, field.Key)
			if value == "" {
				continue
			}
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s: %s", field.Label, value)), "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stringField renders a scalar content field for export; nil becomes "".
func stringField(entry map[string]any, key string) string {
	v, present := entry[key]
	if !present || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}
