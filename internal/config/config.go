// Package config resolves the client's runtime settings from the
// environment, with a .env file as a convenience for development.
package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
}

type EnvConfig interface {
	GetAPIURL() string
	GetAppName() string
	GetDataFolder() string
	GetCallbackPort() int
	GetEnv() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()
	return mainConfig{}
}
