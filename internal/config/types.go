package config

// Config is the top-level orgchart configuration, corresponding to
// .orgchart.yml.
type Config struct {
	// SnapshotPath points at the directory export. Glob patterns
	// (including **) are supported for sharded exports.
	SnapshotPath string `yaml:"snapshot_path" koanf:"snapshot_path"`

	// ChannelsPath points at the channel lookup file used for dropdown
	// options. Optional.
	ChannelsPath string `yaml:"channels_path" koanf:"channels_path"`

	// DataDir holds the audit database and other operational files.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`

	Server ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
