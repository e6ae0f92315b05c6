package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Notes: NotesConfig{
			Account:       "iCloud",
			DefaultFolder: "Notes",
		},
		Script: ScriptConfig{
			Bin:            "osascript",
			Timeout:        30,
			MaxOutputBytes: 65536,
		},
		Gateway: GatewayConfig{
			Host: "127.0.0.1",
			Port: 8765,
		},
		Audit: AuditConfig{
			Enabled:       false,
			DBPath:        "~/.notesmcp/audit.db",
			RetentionDays: 90,
		},
	}
}
