// Package export turns the active parcel detail into client-deliverable
// artifacts: two-column CSV and a rasterized PDF report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/google/uuid"
)

// DetailRows flattens a parcel detail into field/value pairs: the base
// fields in declaration order, then each land segment and improvement as
// indexed pseudo-fields (land[i].*, improvement[i].*), four per entry.
func DetailRows(d *models.ParcelDetail) [][]string {
	rows := [][]string{
		{"account_num", d.AccountNum},
		{"geo_id", d.GeoID},
		{"county", d.County},
		{"city", d.City},
		{"situs_address", d.SitusAddress},
		{"owner_name", d.OwnerName},
		{"owner_address", d.OwnerAddress},
		{"legal_descr", d.LegalDescr},
		{"school_district", d.SchoolDistrict},
		{"land_value", formatFloat(d.LandValue)},
		{"improvement_value", formatFloat(d.ImprovementVal)},
		{"total_value", formatFloat(d.TotalValue)},
		{"assessed_value", formatFloat(d.AssessedValue)},
		{"land_acres", formatFloat(d.LandAcres)},
		{"year_built", fmt.Sprintf("%d", d.YearBuilt)},
	}

	for i, seg := range d.LandSegmentsList {
		prefix := fmt.Sprintf("land[%d].", i)
		rows = append(rows,
			[]string{prefix + "code", seg.Code},
			[]string{prefix + "description", seg.Description},
			[]string{prefix + "acres", formatFloat(seg.Acres)},
			[]string{prefix + "value", formatFloat(seg.Value)},
		)
	}
	for i, imp := range d.ImprovementsList {
		prefix := fmt.Sprintf("improvement[%d].", i)
		rows = append(rows,
			[]string{prefix + "type", imp.Type},
			[]string{prefix + "description", imp.Description},
			[]string{prefix + "year_built", fmt.Sprintf("%d", imp.YearBuilt)},
			[]string{prefix + "value", formatFloat(imp.Value)},
		)
	}
	return rows
}

// WriteCSV streams the flattened detail as field,value records.
func WriteCSV(w io.Writer, d *models.ParcelDetail) error {
	cw := csv.NewWriter(w)
	for _, row := range DetailRows(d) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the CSV artifact under dir with a unique name and returns
// the file path.
func SaveCSV(dir string, d *models.ParcelDetail) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	name := fmt.Sprintf("parcel_%s_%s.csv", safeName(d.AccountNum), uuid.New().String()[:8])
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteCSV(f, d); err != nil {
		return "", err
	}
	return path, nil
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func safeName(s string) string {
	if s == "" {
		return "unknown"
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
