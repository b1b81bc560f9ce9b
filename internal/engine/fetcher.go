package engine

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// VCardFetcher retrieves a remote contact card.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// vcardMediaTypes are served by CardDAV servers and static hosts for .vcf files.
var vcardMediaTypes = map[string]bool{
	"text/vcard":     true,
	"text/x-vcard":   true,
	"text/directory": true,
}

// genericMediaTypes say nothing about the payload; the body is sniffed instead.
var genericMediaTypes = map[string]bool{
	"":                         true,
	"text/plain":               true,
	"application/octet-stream": true,
}

var vcardMagic = []byte("BEGIN:VCARD")

// CardFetcher downloads a single contact card over HTTP(S), as exposed by
// CardDAV address books or a plain .vcf link.
type CardFetcher struct {
	Client *http.Client
}

// NewCardFetcher creates a fetcher with the configured timeout.
func NewCardFetcher() *CardFetcher {
	return &CardFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch returns the card body, capped at config.MaxHTTPResponseSize.
//
// Rejected credentials map to ErrCardAuth and a missing card to
// ErrCardNotFound. A body that is neither labelled nor shaped like a vCard
// fails with ErrNotVCard before the decoder ever sees it.
func (f *CardFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.AcceptVCard)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if err := checkCardStatus(resp.StatusCode); err != nil {
		_ = resp.Body.Close()
		log.Warn(config.MsgCardRejected, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, err
	}

	body := bufio.NewReader(io.LimitReader(resp.Body, config.MaxHTTPResponseSize))
	mediaType, err := checkCardContent(resp.Header.Get(config.HeaderContentType), body)
	if err != nil {
		_ = resp.Body.Close()
		log.Warn(config.MsgCardRejected, slog.String(config.LogKeyMediaType, mediaType))
		return nil, err
	}

	log.Debug(config.MsgCardFetched, slog.String(config.LogKeyMediaType, mediaType))
	return &cardBody{Reader: body, Closer: resp.Body}, nil
}

func checkCardStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %d", ErrCardAuth, code)
	case code == http.StatusNotFound || code == http.StatusGone:
		return fmt.Errorf("%w: %d", ErrCardNotFound, code)
	default:
		return fmt.Errorf("%s: %d", config.ErrCardStatus, code)
	}
}

// checkCardContent accepts vCard media types outright and sniffs the first
// bytes of untyped bodies. It returns the parsed media type for logging.
func checkCardContent(contentType string, body *bufio.Reader) (string, error) {
	mediaType := ""
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return contentType, fmt.Errorf("%w: %s", ErrNotVCard, contentType)
		}
		mediaType = mt
	}

	if vcardMediaTypes[mediaType] {
		return mediaType, nil
	}
	if genericMediaTypes[mediaType] && looksLikeVCard(body) {
		return mediaType, nil
	}
	return mediaType, fmt.Errorf("%w: %q", ErrNotVCard, mediaType)
}

// looksLikeVCard peeks past a UTF-8 BOM and leading blank lines for BEGIN:VCARD.
func looksLikeVCard(body *bufio.Reader) bool {
	head, _ := body.Peek(512)
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	return len(head) >= len(vcardMagic) && bytes.EqualFold(head[:len(vcardMagic)], vcardMagic)
}

// cardBody reads through the sniffing buffer and closes the response body.
type cardBody struct {
	io.Reader
	io.Closer
}
