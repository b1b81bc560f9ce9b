package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// ImportSource points at a contact card. Path wins over URL when both are set.
type ImportSource struct {
	Path string // Local .vcf file
	URL  string // CardDAV or WebDAV URL
	User string // HTTP Basic Auth Username
	Pass string // HTTP Basic Auth Password
}

// Importer reads a birthday out of the user's own contact card.
type Importer struct {
	Fetcher VCardFetcher
}

// ImportBirthday returns the first full birth date (year known) found in the
// source, formatted as YYYY-MM-DD. Cards without a usable BDAY are skipped.
func (im *Importer) ImportBirthday(ctx context.Context, src ImportSource) (string, error) {
	reader, err := im.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%s: %w", config.ErrImportFailed, err)
	}
	defer func() { _ = reader.Close() }()

	return ReadBirthday(ctx, reader)
}

// ReadBirthday scans a vCard stream for the first card with a full BDAY.
func ReadBirthday(ctx context.Context, r io.Reader) (string, error) {
	log := slog.With(config.LogKeyComponent, config.CompImporter)
	decoder := vcard.NewDecoder(r)
	cards := 0

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}
		cards++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		born, err := parseBirthDate(bday.Value)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
			continue
		}

		value := FormatDate(born)
		log.Info(config.MsgImported, config.LogKeyBirthday, value, config.LogKeyCards, cards)
		return value, nil
	}

	return "", ErrNoBirthday
}

func (im *Importer) open(ctx context.Context, src ImportSource) (io.ReadCloser, error) {
	switch {
	case src.Path != "":
		return os.Open(src.Path)
	case src.URL != "":
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, src.URL, src.User, src.Pass)
	default:
		return nil, errors.New(config.ErrImportSource)
	}
}

// parseBirthDate accepts the vCard BDAY layouts that carry a year.
// Truncated dates (--MM-DD) cannot anchor a life grid and are rejected.
func parseBirthDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
