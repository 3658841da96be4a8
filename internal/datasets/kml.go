package datasets

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/UnknownOlympus/kiez/internal/models"
)

// ErrKMLNotFound is returned when a KMZ archive holds no KML document.
var ErrKMLNotFound = errors.New("no KML document in archive")

const kmzMainDocument = "doc.kml"

type placemark struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Point       struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
}

// extractKML returns doc.kml from a KMZ archive, or its first .kml entry.
func extractKML(archive []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("failed to open KMZ archive: %w", err)
	}

	var fallback *zip.File
	for _, file := range reader.File {
		if file.Name == kmzMainDocument {
			return readZipFile(file)
		}
		if fallback == nil && strings.EqualFold(path.Ext(file.Name), ".kml") {
			fallback = file
		}
	}
	if fallback == nil {
		return nil, ErrKMLNotFound
	}

	return readZipFile(fallback)
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxDownload))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}

	return data, nil
}

// decodePlacemarks streams every Placemark of a KML document, however deeply nested in folders.
func decodePlacemarks(r io.Reader) ([]placemark, error) {
	dec := xml.NewDecoder(r)

	var placemarks []placemark
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return placemarks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode KML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Placemark" {
			continue
		}

		var pm placemark
		if err = dec.DecodeElement(&pm, &start); err != nil {
			return nil, fmt.Errorf("failed to decode placemark: %w", err)
		}
		placemarks = append(placemarks, pm)
	}
}

func (pm placemark) candidate(idx int) models.Candidate {
	id := strings.TrimSpace(pm.ID)
	if id == "" {
		id = "fountain-" + strconv.Itoa(idx+1)
	}

	name := strings.TrimSpace(pm.Name)
	description := plainText(pm.Description)
	attrs := map[string]string{"Name": name}
	if description != "" {
		attrs["Description"] = description
	}

	return models.Candidate{
		ID:          id,
		Name:        name,
		Description: description,
		Location:    pm.location(),
		Attributes:  attrs,
	}
}

// location parses KML "lon,lat[,alt]" coordinates. Only the first tuple counts.
func (pm placemark) location() *models.GeoPoint {
	fields := strings.Fields(pm.Point.Coordinates)
	if len(fields) == 0 {
		return nil
	}

	parts := strings.Split(fields[0], ",")
	const minParts = 2
	if len(parts) < minParts {
		return nil
	}

	lon, okLon := parseCoordinate(parts[0])
	lat, okLat := parseCoordinate(parts[1])
	if !okLon || !okLat {
		return nil
	}

	return &models.GeoPoint{Latitude: lat, Longitude: lon}
}

// plainText strips markup from KML balloon descriptions.
func plainText(html string) string {
	html = strings.TrimSpace(html)
	if html == "" || !strings.Contains(html, "<") {
		return html
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	var parts []string
	collectText(doc.Selection, &parts)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "#text" {
			*parts = append(*parts, node.Text())
			return
		}
		collectText(node, parts)
	})
}
