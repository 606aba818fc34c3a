package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SnapshotPath: "teams.json",
		ChannelsPath: "channels.json",
		DataDir:      ".orgchart",
		Server: ServerConfig{
			Port:     8080,
			AllowAll: false,
		},
	}
}
