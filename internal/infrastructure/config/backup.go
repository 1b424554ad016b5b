package config

// BackupConfig holds backup import and export settings
type BackupConfig struct {
	// Largest accepted backup file in bytes
	MaxSizeBytes int64 `mapstructure:"max_size_bytes" validate:"min=1"`

	// Deepest accepted nesting of objects and arrays
	MaxDepth int `mapstructure:"max_depth" validate:"min=8,max=512"`

	// Directory for exported backups when no output file is given
	ExportDir string `mapstructure:"export_dir"`
}
