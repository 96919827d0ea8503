package geom

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlPlacemark struct {
	Name    string       `xml:"name"`
	Polygon *kmlPolygon  `xml:"Polygon"`
	Multi   []kmlPolygon `xml:"MultiGeometry>Polygon"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
	Folders    []kmlPlacemark `xml:"Document>Folder>Placemark"`
	Bare       []kmlPlacemark `xml:"Placemark"`
}

// LoadKML extracts Placemark polygons (Polygon or MultiGeometry>Polygon) from a KML
// file. KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Dataset{}, err
	}
	var d Dataset
	all := append(append(doc.Placemarks, doc.Folders...), doc.Bare...)
	for _, pm := range all {
		props := map[string]any{"name": pm.Name}
		switch {
		case pm.Polygon != nil:
			d.add(pm.Name, props, pm.Polygon.orb())
		case len(pm.Multi) > 0:
			mp := make(orb.MultiPolygon, 0, len(pm.Multi))
			for _, p := range pm.Multi {
				mp = append(mp, p.orb())
			}
			d.add(pm.Name, props, mp)
		default:
			d.Skipped++
		}
	}
	if len(d.Features) == 0 {
		return Dataset{}, fmt.Errorf("kml: %w", ErrNoFeatures)
	}
	return d, nil
}

func (p kmlPolygon) orb() orb.Polygon {
	poly := orb.Polygon{parseKMLCoords(p.Outer.Coordinates)}
	for _, in := range p.Inner {
		poly = append(poly, parseKMLCoords(in.Coordinates))
	}
	return poly
}

// parseKMLCoords splits whitespace-separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) orb.Ring {
	var ring orb.Ring
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		ring = append(ring, orb.Point{lon, lat})
	}
	return ring
}
