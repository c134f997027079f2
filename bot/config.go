package main

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/adrg/xdg"
)

var cfgFile = "chompbot/config.json"

type Config struct {
	ServerURL        string `json:"server_url"`
	ListenAddr       string `json:"listen_addr"`
	IntervalMs       int    `json:"interval_ms"`
	MaxMoves         int    `json:"max_moves"`
	InitIfMissing    bool   `json:"init_if_missing"`
	RequestTimeoutMs int    `json:"request_timeout_ms"`
	WatchRefreshMs   int    `json:"watch_refresh_ms"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		ServerURL:        "http://127.0.0.1:8080",
		ListenAddr:       ":8080",
		IntervalMs:       1500,
		MaxMoves:         200,
		InitIfMissing:    true,
		RequestTimeoutMs: 5000,
		WatchRefreshMs:   500,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

// InitConfig merges the XDG config file, if any, over the defaults and
// installs the result as the active config.
func InitConfig() Config {
	config := DefaultConfig()
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if raw, readErr := os.ReadFile(absPath); readErr == nil {
			if jsonErr := json.Unmarshal(raw, &config); jsonErr != nil {
				log.Printf("[config] ignoring malformed %s: %v", absPath, jsonErr)
				config = DefaultConfig()
			}
		}
	}
	configStore.Update(config)
	return config
}

// SaveConfig writes the active config to the XDG config dir.
func SaveConfig() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(GetConfig(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(absPath, data, 0o664)
}
