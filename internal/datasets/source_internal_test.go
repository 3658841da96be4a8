package datasets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"testing"

	"github.com/Flaque/filet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func bodyResponse(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

// routes answers every request with the body registered for its URL, or 404.
func routes(t *testing.T, bodies map[string][]byte) *mockHTTPClient {
	t.Helper()

	return &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, userAgent, req.Header.Get("User-Agent"))

			body, ok := bodies[req.URL.String()]
			if !ok {
				return bodyResponse(http.StatusNotFound, nil), nil
			}
			return bodyResponse(http.StatusOK, body), nil
		},
	}
}

func TestFetch(t *testing.T) {
	ctx := t.Context()

	t.Run("downloads remote location", func(t *testing.T) {
		client := routes(t, map[string][]byte{"https://example.org/data": []byte("payload")})

		data, err := fetch(ctx, client, "https://example.org/data")

		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("non-200 status", func(t *testing.T) {
		client := routes(t, nil)

		data, err := fetch(ctx, client, "https://example.org/missing")

		require.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "404")
		assert.Nil(t, data)
	})

	t.Run("transport error", func(t *testing.T) {
		client := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("connection reset")
			},
		}

		_, err := fetch(ctx, client, "https://example.org/data")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("reads local file", func(t *testing.T) {
		defer filet.CleanUp(t)
		file := filet.TmpFile(t, "", "local payload")

		data, err := fetch(ctx, nil, file.Name())
		require.NoError(t, err)
		assert.Equal(t, "local payload", string(data))

		data, err = fetch(ctx, nil, "file://"+file.Name())
		require.NoError(t, err)
		assert.Equal(t, "local payload", string(data))
	})

	t.Run("missing local file", func(t *testing.T) {
		_, err := fetch(context.Background(), nil, "/nonexistent/kiez/data.xlsx")

		require.Error(t, err)
	})
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		present bool
	}{
		{name: "decimal point", raw: "52.5219", want: 52.5219, present: true},
		{name: "decimal comma", raw: " 13,4132 ", want: 13.4132, present: true},
		{name: "negative", raw: "-0.5", want: -0.5, present: true},
		{name: "empty", raw: "  ", present: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present := parseCoordinate(tt.raw)

			assert.Equal(t, tt.present, present)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("not a number", func(t *testing.T) {
		got, present := parseCoordinate("n/a")

		assert.True(t, present)
		assert.True(t, math.IsNaN(got))
	})
}

func TestLocation(t *testing.T) {
	assert.Nil(t, location("", "13.4"))
	assert.Nil(t, location("52.5", ""))

	point := location("52,5", "13,4")
	require.NotNil(t, point)
	assert.InDelta(t, 52.5, point.Latitude, 1e-9)
	assert.InDelta(t, 13.4, point.Longitude, 1e-9)
}
