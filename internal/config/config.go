package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-LifeWeeks/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Life Weeks"
	AppID             = "com.github.tartampluch.go-lifeweeks"
	KeyringService    = "com.github.tartampluch.go-lifeweeks"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion       = "version"
	FlagDebug         = "debug"
	FlagPrint         = "print"
	FlagBirthday      = "birthday"
	FlagLifespan      = "lifespan"
	FlagEndDate       = "end"
	FlagWidth         = "width"
	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescPrint     = "Print the grid to the terminal instead of opening a window"
	FlagDescBirthday  = "Birth date (YYYY-MM-DD) used with -print"
	FlagDescLifespan  = "Lifespan in years used with -print"
	FlagDescEndDate   = "Explicit end date (YYYY-MM-DD) used with -print, overrides -lifespan"
	FlagDescWidth     = "Available width in pixels used with -print"
	MsgVersionOutput  = "%s version %s (%s/%s)\n"
	MsgPrintNoRender  = "nothing to render: birthday %q is not a valid YYYY-MM-DD date\n"
	MsgPrintSummary   = "week %d of %d, %d columns\n"
	MsgPrintNoCurrent = "%d weeks, %d columns\n"
)

// -----------------------------------------------------------------------------
// Settings Store Keys & Preferences
// -----------------------------------------------------------------------------

const (
	// Keys shared with the settings store. Values are YYYY-MM-DD strings,
	// except the lifespan which is a decimal number of years.
	PrefBirthday = "birthday"
	PrefEndDate  = "endDate"
	PrefLifespan = "lifespan"

	PrefLanguage    = "language"
	PrefTimezone    = "timezone"
	PrefServerPort  = "server_port"
	PrefFeedEnabled = "feed_enabled"
	PrefCardURL     = "vcard_url"
	PrefUsername    = "username"
	PrefLastRun     = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Life Grid Defaults
// -----------------------------------------------------------------------------

const (
	DefaultLifespanYears = 80
	MinLifespanYears     = 1
	MaxLifespanYears     = 150
	DaysPerWeek          = 7
	WeekDuration         = DaysPerWeek * 24 * time.Hour

	// DateLayout is the only accepted date representation (YYYY-MM-DD).
	DateLayout = "2006-01-02"
)

// Grid layout planning. Sizes are in pixels.
const (
	MaxCellSize = 20.0
	MinCellSize = 12.0
	GapRatio    = 0.2

	// FitTolerance absorbs float rounding when the analytically shrunk row
	// width is compared with the available width.
	FitTolerance = 0.01

	// Candidate column counts: CandidateLimit down to CandidateBase in steps
	// of CandidateBase, then CandidateTail.
	CandidateBase  = 52
	CandidateLimit = 520

	// DefaultGridWidth is used when neither the container nor the window
	// reports a usable width.
	DefaultGridWidth = 1040.0
)

// CandidateTail lists the small column counts tried after the yearly multiples.
var CandidateTail = []int{26, 13, 4, 2, 1}

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 1100
	MainWindowHeight    = 760
	SettingsWindowWidth = 520

	ResizeDebounce   = 100 * time.Millisecond
	RefreshInterval  = time.Hour
	PlaceholderDate  = "YYYY-MM-DD"
	PlaceholderURL   = "https://..."
	TimezoneUTC      = "UTC"
	TimezoneLocal    = "Local"
	DefaultTimezone  = TimezoneUTC
	DefaultLanguage  = "en"
	DefaultPort      = "18081"
	DefaultFeedState = false

	LayoutColumnsDouble = 2
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinSettings   = "win_settings_title"
	TKeyMenuShow      = "menu_show"
	TKeyMenuSettings  = "menu_settings"
	TKeyTrayStatus    = "tray_status"   // Requires Week, Total
	TKeyTrayIdle      = "tray_idle"     // No valid birthday yet
	TKeyStatusWeek    = "status_week"   // Requires Week, Total, Left
	TKeyStatusDone    = "status_done"   // Requires Total (end date in the past)
	TKeyStatusUnborn  = "status_unborn" // Requires Total (birthday in the future)
	TKeyStatusEmpty   = "status_empty"
	TKeyLblBirthday   = "lbl_birthday"
	TKeyLblEndDate    = "lbl_end_date"
	TKeyLblLifespan   = "lbl_lifespan"
	TKeyLblYears      = "lbl_years_suffix"
	TKeyLblLanguage   = "lbl_language"
	TKeyLblTimezone   = "lbl_timezone"
	TKeyHelpTimezone  = "help_timezone"
	TKeyLblGeneral    = "lbl_general"
	TKeyLblFeed       = "lbl_feed"
	TKeyLblEnableFeed = "lbl_enable_feed"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyLblImport     = "lbl_import"
	TKeyLblURL        = "lbl_url"
	TKeyHelpURL       = "help_vcard_url"
	TKeyLblUser       = "lbl_user"
	TKeyLblPass       = "lbl_pass"
	TKeyBtnImport     = "btn_import"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyEvtYear       = "event_year"     // Requires Age
	TKeyEvtWeek       = "event_week"     // Requires Week, Total
	TKeyNotifImported = "notif_imported" // Requires Date
	TKeyErrImport     = "err_import"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrDate      = "err_date_format"
	TKeyErrLifespan  = "err_lifespan_range"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Life Weeks//Engine//EN"
	ICalCalName = "Life in weeks"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "golifeweeks"

	// iCal/vCard Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted in vCard BDAY fields. Only layouts carrying a
	// year are useful for a life grid.
	DateFormatFullDash  = DateLayout
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s-%d@%s"
	UIDKindYear     = "year"
	UIDKindWeek     = "week"
	UIDSalt         = "go-lifeweeks-v1-"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB, a single contact card is tiny
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	AcceptVCard         = "text/vcard, text/x-vcard;q=0.9, text/directory;q=0.8, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate      = "invalid date format"
	ErrNonPositiveSpan  = "end date is not after birthday"
	ErrLayoutUnfittable = "no column count fits the available width"
	ErrNoBirthday       = "no contact card with a full birth date"
	ErrImportSource     = "import source is empty"
	ErrImportFailed     = "birthday import failed"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrCardAuth         = "contact server rejected the credentials"
	ErrCardNotFound     = "contact card not found"
	ErrCardStatus       = "contact server returned an unexpected status"
	ErrNotVCard         = "response is not a vCard"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
	ErrTimezone         = "unknown timezone, falling back to UTC"
	ErrFeedBuild        = "failed to build calendar feed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackEvtYear    = "Year %d of life begins"
	FallbackEvtWeek    = "Week %d of %d"
	FallbackStatus     = "Week %d of %d (%d left)"
	FallbackStatusDone = "All %d weeks lived"
	FallbackStatusNew  = "%d weeks ahead"
	FallbackStatusNone = "Enter your birthday to draw the grid"
	FallbackTrayLabel  = "Go Life Weeks"

	TitleStartupError = "Startup Error"
	TitleImportError  = "Import Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgAppStarting     = "Starting application"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgWorkerStart     = "Background worker started"
	MsgWorkerStop      = "Worker stopping due to context cancellation"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Calendar cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgImported        = "Birthday imported from contact card"
	MsgCardFetched     = "Contact card response accepted"
	MsgCardRejected    = "Contact card response rejected"
	MsgNoRender        = "Birthday invalid, keeping previous grid"
	MsgEndDateReset    = "End date reset to derived lifespan"
	MsgEndDateProposed = "End date edit pending"
	MsgRecomputed      = "Grid recomputed"
	MsgLayoutFallback  = "Layout fallback used"
	MsgFeedBuilt       = "Calendar feed generated"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsSave    = "Saving preferences"
	MsgKeyringFail     = "Failed to save credentials to keyring"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyBirthday  = "birthday"
	LogKeyEndDate   = "end_date"
	LogKeyMode      = "mode"
	LogKeyTotal     = "total_weeks"
	LogKeyCurrent   = "current_week"
	LogKeyColumns   = "columns"
	LogKeyCellSize  = "cell_size"
	LogKeyWidth     = "width"
	LogKeyTimezone  = "timezone"
	LogKeyEvents    = "events"
	LogKeyCards     = "total_cards"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"
	LogKeyMediaType = "media_type"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompEngine   = "engine"
	CompLayout   = "layout"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompImporter = "importer"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompTerm     = "term"
)
