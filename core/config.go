package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// UserAgent is sent with every request made by serverpack
var UserAgent = "packwiz/serverpack"

const (
	DefaultAPIURL    = "https://addons-ecs.forgesvc.net/api/v2"
	DefaultGameID    = 432  // Minecraft
	DefaultSectionID = 4471 // Modpacks
	DefaultTimeout   = 60 * time.Second
)

// Config is the process-wide configuration. It is decoded once at startup and then only read.
type Config struct {
	APIURL         string        `mapstructure:"api-url"`
	GameID         int           `mapstructure:"game-id"`
	SectionID      int           `mapstructure:"section-id"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Max            int           `mapstructure:"max"`
	NonInteractive bool          `mapstructure:"non-interactive"`
	Attempts       int           `mapstructure:"attempts"`
	Verbose        bool          `mapstructure:"verbose"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		GameID:    DefaultGameID,
		SectionID: DefaultSectionID,
		Timeout:   DefaultTimeout,
		Max:       1,
	}
}

// DecodeConfig decodes a settings map (usually viper.AllSettings()) on top of DefaultConfig.
// Unknown keys are ignored.
func DecodeConfig(settings map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       secondsToDurationHook,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(settings); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("invalid configuration: negative timeout %v", cfg.Timeout)
	}
	if cfg.Max < 1 {
		cfg.Max = 1
	}
	if cfg.Attempts < 0 {
		cfg.Attempts = 0
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDurationHook reads bare numbers as seconds, and strings either as seconds or as a Go duration
func secondsToDurationHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case uint:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case string:
		s := strings.TrimSpace(v)
		if secs, err := strconv.ParseFloat(s, 64); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", v)
		}
		return d, nil
	}
	return data, nil
}
