package config

// SessionConfig holds settings of the single-writer tracker session
type SessionConfig struct {
	// Lock file guarding against two writers
	LockFile string `mapstructure:"lock_file" validate:"required"`

	// BCP 47 tag used to collate material names
	Locale string `mapstructure:"locale" validate:"required,bcp47_language_tag"`
}
