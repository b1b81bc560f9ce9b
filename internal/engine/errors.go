package engine

import (
	"errors"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Error taxonomy of the engine. The grid errors never reach the user: an
// invalid birthday suppresses the render, the others are recovered with
// defaults. Import errors are shown in the import dialog.
var (
	// ErrInvalidDateFormat reports a value that is not a real YYYY-MM-DD date.
	ErrInvalidDateFormat = errors.New(config.ErrInvalidDate)

	// ErrNonPositiveLifespan reports an end date that does not leave a single full week.
	ErrNonPositiveLifespan = errors.New(config.ErrNonPositiveSpan)

	// ErrNoBirthday is returned by the importer when no card carries a full birth date.
	ErrNoBirthday = errors.New(config.ErrNoBirthday)

	// ErrCardAuth reports a 401 or 403 from the contact server.
	ErrCardAuth = errors.New(config.ErrCardAuth)

	// ErrCardNotFound reports a 404 or 410 for the contact card URL.
	ErrCardNotFound = errors.New(config.ErrCardNotFound)

	// ErrNotVCard reports a response that does not carry a vCard, typically
	// an HTML login page served with a 200.
	ErrNotVCard = errors.New(config.ErrNotVCard)
)
