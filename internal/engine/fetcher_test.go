package engine_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

const fetchedCard = "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Me\r\nBDAY:1990-01-01\r\nEND:VCARD\r\n"

// serveCard answers every request with body under the given Content-Type.
func serveCard(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set(config.HeaderContentType, contentType)
		} else {
			// Suppress net/http content sniffing.
			w.Header()[config.HeaderContentType] = nil
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// TestCardFetcher_Request checks the headers a CardDAV server sees.
func TestCardFetcher_Request(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "me", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.Contains(t, r.Header.Get(config.HeaderAccept), "text/vcard")

		w.Header().Set(config.HeaderContentType, "text/vcard; charset=utf-8")
		_, _ = io.WriteString(w, fetchedCard)
	}))
	defer ts.Close()

	rc, err := engine.NewCardFetcher().Fetch(context.Background(), ts.URL, "me", "secret")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, fetchedCard, string(got), "sniffing must not consume the body")
}

func TestCardFetcher_ContentTypes(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     bool
	}{
		{"vCard", "text/vcard", fetchedCard, false},
		{"Legacy vCard", "text/x-vcard", fetchedCard, false},
		{"Directory", "text/directory; profile=vCard", fetchedCard, false},
		{"Plain text card", "text/plain; charset=utf-8", fetchedCard, false},
		{"Octet stream with BOM", "application/octet-stream", "\xef\xbb\xbf\r\n" + fetchedCard, false},
		{"Untyped card", "", "begin:vcard\r\nEND:VCARD\r\n", false},
		{"HTML login page", "text/html; charset=utf-8", "<html><body>Sign in</body></html>", true},
		{"Plain text error", "text/plain", "Service temporarily unavailable", true},
		{"JSON", "application/json", `{"error":"nope"}`, true},
		{"Malformed media type", "text/;;", fetchedCard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := serveCard(t, tt.contentType, tt.body)

			rc, err := engine.NewCardFetcher().Fetch(context.Background(), ts.URL, "", "")

			if tt.wantErr {
				assert.ErrorIs(t, err, engine.ErrNotVCard)
				assert.Nil(t, rc)
				return
			}
			require.NoError(t, err)
			_ = rc.Close()
		})
	}
}

func TestCardFetcher_Status(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantIs     error
		wantErr    string
	}{
		{"Unauthorized", http.StatusUnauthorized, engine.ErrCardAuth, "401"},
		{"Forbidden", http.StatusForbidden, engine.ErrCardAuth, "403"},
		{"NotFound", http.StatusNotFound, engine.ErrCardNotFound, "404"},
		{"Gone", http.StatusGone, engine.ErrCardNotFound, "410"},
		{"ServerError", http.StatusInternalServerError, nil, config.ErrCardStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			rc, err := engine.NewCardFetcher().Fetch(context.Background(), ts.URL, "", "")

			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

// TestCardFetcher_ImportEndToEnd runs the importer against a live server.
func TestCardFetcher_ImportEndToEnd(t *testing.T) {
	ts := serveCard(t, "text/vcard", fetchedCard)
	im := &engine.Importer{Fetcher: engine.NewCardFetcher()}

	got, err := im.ImportBirthday(context.Background(), engine.ImportSource{URL: ts.URL})

	require.NoError(t, err)
	assert.Equal(t, "1990-01-01", got)
}

func TestCardFetcher_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := engine.NewCardFetcher().Fetch(ctx, ts.URL, "", "")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCardFetcher_RejectedURLs(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"Control character", string([]byte{0x7f}), config.ErrInvalidURL},
		{"FTP scheme", "ftp://example.com/me.vcf", config.ErrProtocol},
		{"File scheme", "file:///etc/passwd", config.ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewCardFetcher().Fetch(context.Background(), tt.url, "", "")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
