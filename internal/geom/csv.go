package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// LoadCSV reads a CSV whose rows carry a WKT polygon column and an optional label.
// Column detection: wkt|geometry|geom|the_geom and name|label|title (case-insensitive).
func LoadCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return Dataset{}, err
	}
	if len(recs) == 0 {
		return Dataset{}, errors.New("empty csv")
	}
	header := recs[0]
	idxGeom, idxName := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "wkt", "geometry", "geom", "the_geom":
			if idxGeom == -1 {
				idxGeom = i
			}
		case "name", "label", "title":
			if idxName == -1 {
				idxName = i
			}
		}
	}
	if idxGeom == -1 {
		return Dataset{}, errors.New("csv: geometry column not found")
	}
	var d Dataset
	for n, row := range recs[1:] {
		if idxGeom >= len(row) {
			d.Skipped++
			continue
		}
		g, err := wkt.Unmarshal(strings.TrimSpace(row[idxGeom]))
		if err != nil {
			d.Skipped++
			continue
		}
		props := make(map[string]any, len(header))
		for i, h := range header {
			if i != idxGeom && i < len(row) {
				props[h] = row[i]
			}
		}
		name := fmt.Sprintf("row %d", n+1)
		if idxName >= 0 && idxName < len(row) {
			name = row[idxName]
		}
		d.add(name, props, g)
	}
	if len(d.Features) == 0 {
		return Dataset{}, fmt.Errorf("csv: %w", ErrNoFeatures)
	}
	return d, nil
}
