package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	apiURLVar       = "API_URL"
	appNameVar      = "APP_NAME"
	folderEnvVar    = "FOLDER"
	callbackPortVar = "CALLBACK_PORT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAPIURL() string {
	return GetEnv(apiURLVar, "http://localhost:3001/api")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Shortlink")
}

func (EnvVars) GetDataFolder() string {
	if folder := os.Getenv(folderEnvVar); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shortlink"
	}
	return filepath.Join(home, ".shortlink")
}

// GetCallbackPort is the local port the OAuth redirect lands on. Zero lets
// the OS pick a free one.
func (EnvVars) GetCallbackPort() int {
	port, err := strconv.Atoi(GetEnv(callbackPortVar, "0"))
	if err != nil || port < 0 || port > 65535 {
		return 0
	}
	return port
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
