package config

// defaultConfig is the tree written when no config file exists yet.
func defaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"app": map[string]interface{}{
			"name":    "AppShell",
			"version": "1.0.0",
			"debug":   true,
		},
		"logging": map[string]interface{}{
			"level":         "INFO",
			"console_level": "INFO",
			"file_level":    "DEBUG",
			"log_dir":       "logs",
		},
		"ui": map[string]interface{}{
			"theme":     "light",
			"font_size": 12,
			"window_position": map[string]interface{}{
				"x": 100,
				"y": 100,
			},
			"window_size": map[string]interface{}{
				"width":  800,
				"height": 600,
			},
		},
	}
}
