package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExt lists the file extensions Load understands.
var SupportedExt = []string{".geojson", ".json", ".csv", ".kml", ".wkt"}

// IsSupported reports whether path has a loadable extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExt {
		if e == ext {
			return true
		}
	}
	return false
}

// Load dispatches on file extension.
func Load(path string) (Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return Dataset{}, err
		}
		return ParseWKT(strings.TrimSuffix(filepath.Base(path), ext), string(data))
	}
	return Dataset{}, fmt.Errorf("unsupported file: %q", ext)
}
