package datasets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	// DefaultToiletsURL is the workbook published by the Senate Department for Mobility.
	DefaultToiletsURL = "https://www.berlin.de/sen/uvk/_assets/verkehr/infrastruktur/" +
		"oeffentliche-toiletten/berliner-toiletten-standorte.xlsx"
	// DefaultToiletsSheet is the sheet listing every toilet in the city.
	DefaultToiletsSheet = "Berlinweit"

	headerMarker    = "Bezirk"
	columnLatitude  = "Breitengrad"
	columnLongitude = "Laengengrad"
	columnContract  = "Vertrag"
	columnDesc      = "Description"
	columnSite      = "Standort"
	columnID        = "LavatoryID"
)

// Errors returned while reading the toilets workbook.
var (
	ErrHeaderNotFound = errors.New("no visible header row starting with " + headerMarker)
	ErrMissingColumn  = errors.New("required column missing")
)

var contractLabels = map[int]string{
	1: "Toilettenvertrag mit Wall",
	2: "Pilotprojekt Parktoilettenvertrag",
	3: "Pilottoiletten im Grün/Sonstige öffentliche Toiletten",
	4: "Privat betriebene öffentliche Toiletten",
}

// Toilets reads the public toilets workbook.
type Toilets struct {
	client   HTTPClient
	location string
	sheet    string
	log      *slog.Logger
}

// NewToilets creates the toilets source. Empty location or sheet fall back to the defaults.
func NewToilets(client HTTPClient, location, sheet string, log *slog.Logger) *Toilets {
	if location == "" {
		location = DefaultToiletsURL
	}
	if sheet == "" {
		sheet = DefaultToiletsSheet
	}

	return &Toilets{client: client, location: location, sheet: sheet, log: log}
}

func (t *Toilets) Category() models.Category { return models.CategoryToilets }

func (t *Toilets) Name() string { return "berlin.de toilets workbook" }

// Fetch downloads the workbook and returns one candidate per visible data row.
func (t *Toilets) Fetch(ctx context.Context) ([]models.Candidate, error) {
	data, err := fetch(ctx, t.client, t.location)
	if err != nil {
		return nil, err
	}

	candidates, err := ParseToiletsWorkbook(data, t.sheet)
	if err != nil {
		return nil, err
	}

	t.log.DebugContext(ctx, "Toilets workbook parsed", "sheet", t.sheet, "candidates", len(candidates))
	return candidates, nil
}

// ParseToiletsWorkbook extracts candidates from an xlsx file.
//
// Hidden rows are ignored entirely. The header is the first visible row whose first
// cell is "Bezirk"; rows above it are notes. Coordinates may use a decimal comma.
func ParseToiletsWorkbook(data []byte, sheet string) ([]models.Candidate, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer book.Close()

	rows, visible, err := readSheet(book, sheet)
	if err != nil {
		return nil, err
	}

	headerIdx := -1
	for i, row := range rows {
		if visible[i] && len(row) > 0 && strings.TrimSpace(row[0]) == headerMarker {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}

	header := make([]string, len(rows[headerIdx]))
	columns := make(map[string]int, len(header))
	for i, name := range rows[headerIdx] {
		header[i] = strings.TrimSpace(name)
		if _, dup := columns[header[i]]; !dup && header[i] != "" {
			columns[header[i]] = i
		}
	}
	for _, required := range []string{columnLatitude, columnLongitude} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var candidates []models.Candidate
	for i := headerIdx + 1; i < len(rows); i++ {
		if !visible[i] || blank(rows[i]) {
			continue
		}
		candidates = append(candidates, toiletCandidate(header, columns, rows[i], i+1))
	}

	return candidates, nil
}

func toiletCandidate(header []string, columns map[string]int, row []string, rowNumber int) models.Candidate {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	attrs := make(map[string]string, len(header))
	for i, name := range header {
		if name != "" && i < len(row) {
			attrs[name] = strings.TrimSpace(row[i])
		}
	}
	if contract := cell(columnContract); contract != "" {
		attrs[columnContract] = contractLabel(contract)
	}

	id := cell(columnID)
	if id == "" {
		id = "toilet-" + strconv.Itoa(rowNumber)
	}

	name, description := cell(columnDesc), cell(columnSite)
	if name == "" {
		name, description = description, ""
	}

	return models.Candidate{
		ID:          id,
		Name:        name,
		Description: description,
		Location:    location(cell(columnLatitude), cell(columnLongitude)),
		Attributes:  attrs,
	}
}

// contractLabel maps the numeric contract code to its label and keeps anything else verbatim.
func contractLabel(raw string) string {
	code, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || code != float64(int(code)) {
		return raw
	}
	if label, ok := contractLabels[int(code)]; ok {
		return label
	}

	return raw
}

// readSheet returns the cell text of every row together with its visibility.
func readSheet(book *excelize.File, sheet string) ([][]string, []bool, error) {
	iter, err := book.Rows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	defer iter.Close()

	var (
		rows    [][]string
		visible []bool
	)
	for iter.Next() {
		cols, err := iter.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, cols)
		visible = append(visible, !iter.GetRowOpts().Hidden)
	}
	if err = iter.Error(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate sheet %q: %w", sheet, err)
	}

	return rows, visible, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
