package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Version      string `json:"version"`
		LogLevel     string `json:"log_level"`
		DefaultsFile string `json:"defaults_file"`
	} `json:"app,omitempty"`

	Settings struct {
		Handlers                []string `json:"handlers"`
		Writable                []string `json:"writable"`
		Table                   string   `json:"table"`
		RedisPrefix             string   `json:"redis_prefix"`
		StaticFile              string   `json:"static_file"`
		HydrationTTL            Duration `json:"hydration_ttl"`
		IgnoreUnsupportedForget bool     `json:"ignore_unsupported_forget"`
	} `json:"settings,omitempty"`

	Storage struct {
		DB struct {
			Driver         string `json:"driver"`
			DSN            string `json:"dsn"`
			ConnectRetries uint64 `json:"connect_retries"`
		} `json:"db,omitempty"`

		Redis struct {
			Address        string `json:"address"`
			Password       string `json:"password"`
			DB             int    `json:"db"`
			ConnectRetries uint64 `json:"connect_retries"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Auth struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"auth,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:      jsonCfg.App.Version,
			LogLevel:     jsonCfg.App.LogLevel,
			DefaultsFile: jsonCfg.App.DefaultsFile,
		},
		Settings: Settings{
			Handlers:                jsonCfg.Settings.Handlers,
			Writable:                jsonCfg.Settings.Writable,
			Table:                   jsonCfg.Settings.Table,
			RedisPrefix:             jsonCfg.Settings.RedisPrefix,
			StaticFile:              jsonCfg.Settings.StaticFile,
			HydrationTTL:            time.Duration(jsonCfg.Settings.HydrationTTL),
			IgnoreUnsupportedForget: jsonCfg.Settings.IgnoreUnsupportedForget,
		},
		Storage: Storage{
			DB: DB{
				Driver:         jsonCfg.Storage.DB.Driver,
				DSN:            jsonCfg.Storage.DB.DSN,
				ConnectRetries: jsonCfg.Storage.DB.ConnectRetries,
			},
			Redis: Redis{
				Address:        jsonCfg.Storage.Redis.Address,
				Password:       jsonCfg.Storage.Redis.Password,
				DB:             jsonCfg.Storage.Redis.DB,
				ConnectRetries: jsonCfg.Storage.Redis.ConnectRetries,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Auth: Auth{
			TokenSignKey:  jsonCfg.Auth.TokenSignKey,
			TokenIssuer:   jsonCfg.Auth.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.Auth.TokenDuration),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
