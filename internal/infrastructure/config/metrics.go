package config

// MetricsConfig holds progress metrics export configuration
type MetricsConfig struct {
	// File written in the node_exporter textfile format; empty disables the export
	TextfilePath string `mapstructure:"textfile_path"`
}
