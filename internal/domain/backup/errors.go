package backup

// Kind classifies why a backup was rejected.
type Kind string

const (
	KindNoFile             Kind = "no_file"
	KindEmpty              Kind = "empty"
	KindTooLarge           Kind = "too_large"
	KindNotJSONFile        Kind = "not_json_file"
	KindUnreadable         Kind = "unreadable"
	KindInvalidJSON        Kind = "invalid_json"
	KindMalformed          Kind = "malformed"
	KindUnsafePayload      Kind = "unsafe_payload"
	KindMissingFields      Kind = "missing_fields"
	KindInvalidDataset     Kind = "invalid_dataset"
	KindInvalidMaterials   Kind = "invalid_materials"
	KindDuplicateMaterials Kind = "duplicate_materials"
	KindInvalidArmor       Kind = "invalid_armor"
	KindDuplicateArmor     Kind = "duplicate_armor"
	KindInvalidLevels      Kind = "invalid_levels"
	KindUnknownMaterials   Kind = "unknown_materials"
	KindUnsupportedVersion Kind = "unsupported_version"
)

var messages = map[Kind]string{
	KindNoFile:             "No file provided.",
	KindEmpty:              "Backup file is empty.",
	KindTooLarge:           "Backup file is too large.",
	KindNotJSONFile:        "Backup must be a JSON file.",
	KindUnreadable:         "Backup file could not be read.",
	KindInvalidJSON:        "Backup file is not valid JSON.",
	KindMalformed:          "Backup file is malformed.",
	KindUnsafePayload:      "Invalid backup payload.",
	KindMissingFields:      "Backup file is missing data or state.",
	KindInvalidDataset:     "Backup contains invalid dataset.",
	KindInvalidMaterials:   "Invalid materials list in backup.",
	KindDuplicateMaterials: "Duplicate material ids in backup.",
	KindInvalidArmor:       "Invalid armor list in backup.",
	KindDuplicateArmor:     "Duplicate armor ids in backup.",
	KindInvalidLevels:      "Invalid armor upgrade levels in backup.",
	KindUnknownMaterials:   "Backup references unknown materials.",
	KindUnsupportedVersion: "Unsupported backup version.",
}

// Error is a rejected backup. Message is the user-facing sentence; Detail
// optionally narrows it down (offending id, suggestion).
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + " " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, backup.ErrTooLarge) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind) *Error {
	return &Error{Kind: kind, Message: messages[kind]}
}

func (e *Error) withDetail(detail string) *Error {
	e.Detail = detail
	return e
}

func (e *Error) wrap(err error) *Error {
	e.Err = err
	return e
}

// Sentinels for errors.Is checks.
var (
	ErrNoFile             = newError(KindNoFile)
	ErrEmpty              = newError(KindEmpty)
	ErrTooLarge           = newError(KindTooLarge)
	ErrNotJSONFile        = newError(KindNotJSONFile)
	ErrUnreadable         = newError(KindUnreadable)
	ErrInvalidJSON        = newError(KindInvalidJSON)
	ErrMalformed          = newError(KindMalformed)
	ErrUnsafePayload      = newError(KindUnsafePayload)
	ErrMissingFields      = newError(KindMissingFields)
	ErrInvalidDataset     = newError(KindInvalidDataset)
	ErrInvalidMaterials   = newError(KindInvalidMaterials)
	ErrDuplicateMaterials = newError(KindDuplicateMaterials)
	ErrInvalidArmor       = newError(KindInvalidArmor)
	ErrDuplicateArmor     = newError(KindDuplicateArmor)
	ErrInvalidLevels      = newError(KindInvalidLevels)
	ErrUnknownMaterials   = newError(KindUnknownMaterials)
	ErrUnsupportedVersion = newError(KindUnsupportedVersion)
)
