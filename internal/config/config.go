package config

import "os"

type Config struct {
	ListenAddr string
	DataPath   string
	Region     string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment with local-run defaults.
func Load() Config {
	return Config{
		ListenAddr: getenv("LISTEN_ADDR", ":3000"),
		DataPath:   getenv("DATA_PATH", "./data"),
		Region:     getenv("REGION", "us"),
	}
}
