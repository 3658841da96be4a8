package datasets

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/UnknownOlympus/kiez/internal/geocoding"
	"github.com/UnknownOlympus/kiez/internal/models"
)

// DefaultDemonstrationsURL is the police list of registered assemblies and marches.
const DefaultDemonstrationsURL = "https://www.berlin.de/polizei/service/versammlungsbehoerde/versammlungen-aufzuege/"

const dateLayout = "02.01.2006"

// Attribute keys of a demonstration candidate, named after the table headers.
const (
	AttrDatum           = "Datum"
	AttrVon             = "Von"
	AttrBis             = "Bis"
	AttrThema           = "Thema"
	AttrPLZ             = "PLZ"
	AttrVersammlungsort = "Versammlungsort"
	AttrAufzugsstrecke  = "Aufzugsstrecke"
)

var demonstrationColumns = []string{
	AttrDatum, AttrVon, AttrBis, AttrThema, AttrPLZ, AttrVersammlungsort, AttrAufzugsstrecke,
}

// Demonstrations lists today's assemblies with a location estimated from their postcode.
type Demonstrations struct {
	client    HTTPClient
	url       string
	postcodes geocoding.Postcodes
	geocoder  geocoding.Provider // optional
	loc       *time.Location
	log       *slog.Logger
	now       func() time.Time
}

// NewDemonstrations creates the demonstrations source. geocoder may be nil; postcodes
// missing from the centroid table are then left without a location.
func NewDemonstrations(
	client HTTPClient,
	url string,
	geocoder geocoding.Provider,
	loc *time.Location,
	log *slog.Logger,
) *Demonstrations {
	if url == "" {
		url = DefaultDemonstrationsURL
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Demonstrations{
		client:    client,
		url:       url,
		postcodes: geocoding.BerlinPostcodes(),
		geocoder:  geocoder,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

func (d *Demonstrations) Category() models.Category { return models.CategoryDemonstrations }

func (d *Demonstrations) Name() string { return "Berlin police assembly list" }

// Fetch scrapes the assembly table and keeps the entries taking place today.
func (d *Demonstrations) Fetch(ctx context.Context) ([]models.Candidate, error) {
	page, err := fetch(ctx, d.client, d.url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse demonstrations page: %w", err)
	}

	today := d.now().In(d.loc).Format(dateLayout)

	var candidates []models.Candidate
	doc.Find("tr").Each(func(idx int, row *goquery.Selection) {
		if row.Find(`td[headers="Datum"]`).Length() == 0 {
			return
		}

		attrs := make(map[string]string, len(demonstrationColumns))
		for _, column := range demonstrationColumns {
			attrs[column] = cellText(row, column)
		}
		if attrs[AttrDatum] != today {
			return
		}

		postcode, convErr := strconv.Atoi(attrs[AttrPLZ])
		if convErr != nil {
			d.log.DebugContext(ctx, "Skipping demonstration without postcode", "row", idx, "plz", attrs[AttrPLZ])
			return
		}

		candidates = append(candidates, models.Candidate{
			ID:          "demo-" + strconv.Itoa(idx),
			Name:        attrs[AttrThema],
			Description: attrs[AttrVersammlungsort],
			Location:    d.locate(ctx, postcode, attrs[AttrVersammlungsort]),
			Attributes:  attrs,
		})
	})

	slices.SortStableFunc(candidates, func(a, b models.Candidate) int {
		return strings.Compare(a.Attr(AttrVon), b.Attr(AttrVon))
	})

	return candidates, nil
}

func (d *Demonstrations) locate(ctx context.Context, postcode int, place string) *models.GeoPoint {
	if point, ok := d.postcodes.Lookup(postcode); ok {
		return &point
	}
	if d.geocoder == nil {
		return nil
	}

	address := fmt.Sprintf("%s, %d Berlin", place, postcode)
	point, err := d.geocoder.Geocode(ctx, address)
	if err != nil {
		d.log.WarnContext(ctx, "Failed to geocode demonstration", "address", address, "error", err)
		return nil
	}

	return point
}

func cellText(row *goquery.Selection, header string) string {
	return strings.TrimSpace(row.Find(`td[headers="` + header + `"]`).First().Text())
}
