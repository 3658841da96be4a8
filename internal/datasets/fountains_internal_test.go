package datasets

import (
	"archive/zip"
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fountainsKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>Trinkbrunnen</name>
    <Folder>
      <name>Mitte</name>
      <Placemark id="tb-1">
        <name>Trinkbrunnen Alexanderplatz</name>
        <description><![CDATA[<p>Kugelbrunnen</p><br/><b>in Betrieb</b>]]></description>
        <Point><coordinates>13.4132,52.5219,0</coordinates></Point>
      </Placemark>
      <Placemark>
        <name>Trinkbrunnen Rosenthaler Platz</name>
        <description>Plain text</description>
        <Point><coordinates>
          13.4016,52.5297
        </coordinates></Point>
      </Placemark>
    </Folder>
    <Placemark>
      <name>Ohne Koordinaten</name>
    </Placemark>
  </Document>
</kml>`

func buildKMZ(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range files {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func TestFountains_Fetch(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	archive := buildKMZ(t, map[string]string{"doc.kml": fountainsKML, "files/icon.png": "png"})

	t.Run("scrapes archive link from page", func(t *testing.T) {
		page := `<html><body>
			<a class="other" href="/nothing.kmz">other</a>
			<a class="trinkbrunnen" href="/media/trinkbrunnen.kmz">Karte</a>
		</body></html>`
		client := routes(t, map[string][]byte{
			"https://www.bwb.de/de/trinkbrunnen.php": []byte(page),
			"https://www.bwb.de/media/trinkbrunnen.kmz": archive,
		})
		source := NewFountains(client, "", "", logger)

		assert.Equal(t, models.CategoryFountains, source.Category())
		candidates, err := source.Fetch(ctx)
		require.NoError(t, err)
		require.Len(t, candidates, 3)

		first := candidates[0]
		assert.Equal(t, "tb-1", first.ID)
		assert.Equal(t, "Trinkbrunnen Alexanderplatz", first.Name)
		assert.Equal(t, "Kugelbrunnen in Betrieb", first.Description)
		require.NotNil(t, first.Location)
		assert.InDelta(t, 52.5219, first.Location.Latitude, 1e-9)
		assert.InDelta(t, 13.4132, first.Location.Longitude, 1e-9)

		second := candidates[1]
		assert.Equal(t, "fountain-2", second.ID)
		assert.Equal(t, "Plain text", second.Attr("Description"))
		require.NotNil(t, second.Location)
		assert.InDelta(t, 52.5297, second.Location.Latitude, 1e-9)

		assert.Nil(t, candidates[2].Location)
	})

	t.Run("archive override skips the page", func(t *testing.T) {
		client := routes(t, map[string][]byte{"https://mirror.example.org/tb.kmz": archive})
		source := NewFountains(client, "https://unused.example.org", "https://mirror.example.org/tb.kmz", logger)

		candidates, err := source.Fetch(ctx)

		require.NoError(t, err)
		assert.Len(t, candidates, 3)
	})

	t.Run("page without link", func(t *testing.T) {
		client := routes(t, map[string][]byte{
			DefaultFountainsPageURL: []byte(`<html><body><a href="/x.kmz">x</a></body></html>`),
		})
		source := NewFountains(client, "", "", logger)

		_, err := source.Fetch(ctx)

		require.ErrorIs(t, err, ErrKMZLinkNotFound)
	})

	t.Run("archive without KML", func(t *testing.T) {
		client := routes(t, map[string][]byte{
			"https://mirror.example.org/tb.kmz": buildKMZ(t, map[string]string{"readme.txt": "nothing"}),
		})
		source := NewFountains(client, "", "https://mirror.example.org/tb.kmz", logger)

		_, err := source.Fetch(ctx)

		require.ErrorIs(t, err, ErrKMLNotFound)
	})

	t.Run("archive is not a zip", func(t *testing.T) {
		client := routes(t, map[string][]byte{"https://mirror.example.org/tb.kmz": []byte("garbage")})
		source := NewFountains(client, "", "https://mirror.example.org/tb.kmz", logger)

		_, err := source.Fetch(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open KMZ archive")
	})
}

func TestExtractKML(t *testing.T) {
	t.Run("falls back to first kml entry", func(t *testing.T) {
		archive := buildKMZ(t, map[string]string{"layers/fountains.KML": "<kml/>"})

		data, err := extractKML(archive)

		require.NoError(t, err)
		assert.Equal(t, "<kml/>", string(data))
	})
}

func TestDecodePlacemarks(t *testing.T) {
	t.Run("malformed document", func(t *testing.T) {
		_, err := decodePlacemarks(strings.NewReader(`<kml><Placemark><name>x</Placemark>`))

		require.Error(t, err)
	})

	t.Run("single coordinate value", func(t *testing.T) {
		placemarks, err := decodePlacemarks(strings.NewReader(
			`<kml><Placemark><Point><coordinates>13.4</coordinates></Point></Placemark></kml>`))

		require.NoError(t, err)
		require.Len(t, placemarks, 1)
		assert.Nil(t, placemarks[0].location())
	})
}

func TestResolveReference(t *testing.T) {
	got, err := resolveReference("https://www.bwb.de/de/trinkbrunnen.php", "assets/tb.kmz")
	require.NoError(t, err)
	assert.Equal(t, "https://www.bwb.de/de/assets/tb.kmz", got)

	got, err = resolveReference("https://www.bwb.de/de/trinkbrunnen.php", "https://cdn.example.org/tb.kmz")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/tb.kmz", got)
}
