package datasets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/UnknownOlympus/kiez/internal/models"
)

// DefaultFountainsPageURL is the BWB page linking the drinking fountain map export.
const DefaultFountainsPageURL = "https://www.bwb.de/de/trinkbrunnen.php"

// ErrKMZLinkNotFound is returned when the BWB page carries no fountain map link.
var ErrKMZLinkNotFound = errors.New("no a.trinkbrunnen link on fountains page")

// Fountains reads the drinking fountains published by Berliner Wasserbetriebe as KMZ.
type Fountains struct {
	client  HTTPClient
	pageURL string
	kmzURL  string // skips page scraping when set
	log     *slog.Logger
}

// NewFountains creates the fountains source. kmzURL may be empty, in which case the
// archive link is scraped from pageURL on every fetch.
func NewFountains(client HTTPClient, pageURL, kmzURL string, log *slog.Logger) *Fountains {
	if pageURL == "" {
		pageURL = DefaultFountainsPageURL
	}

	return &Fountains{client: client, pageURL: pageURL, kmzURL: kmzURL, log: log}
}

func (f *Fountains) Category() models.Category { return models.CategoryFountains }

func (f *Fountains) Name() string { return "BWB drinking fountains" }

// Fetch resolves the current KMZ link and returns one candidate per placemark.
func (f *Fountains) Fetch(ctx context.Context) ([]models.Candidate, error) {
	archiveURL := f.kmzURL
	if archiveURL == "" {
		var err error
		if archiveURL, err = f.scrapeArchiveURL(ctx); err != nil {
			return nil, err
		}
	}

	f.log.DebugContext(ctx, "Downloading fountains archive", "url", archiveURL)
	archive, err := fetch(ctx, f.client, archiveURL)
	if err != nil {
		return nil, err
	}

	kml, err := extractKML(archive)
	if err != nil {
		return nil, err
	}

	placemarks, err := decodePlacemarks(bytes.NewReader(kml))
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(placemarks))
	for i, pm := range placemarks {
		candidates = append(candidates, pm.candidate(i))
	}

	return candidates, nil
}

func (f *Fountains) scrapeArchiveURL(ctx context.Context) (string, error) {
	page, err := fetch(ctx, f.client, f.pageURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse fountains page: %w", err)
	}

	href, ok := doc.Find("a.trinkbrunnen").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", ErrKMZLinkNotFound
	}

	return resolveReference(f.pageURL, strings.TrimSpace(href))
}

func resolveReference(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("failed to parse archive link %q: %w", ref, err)
	}

	return baseURL.ResolveReference(refURL).String(), nil
}
