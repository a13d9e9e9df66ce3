package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrNoRecognizedKeys indicates an options file that defines neither of
// the recognized top-level keys. A file that changes nothing is treated as
// a user mistake rather than a no-op.
var ErrNoRecognizedKeys = errors.New("options file defines neither \"lints\" nor \"modifiers\"")

// LoadOptionsFile reads a TOML options file and returns the lints and
// modifiers tables. A missing key yields a nil map; both missing is an
// error.
func LoadOptionsFile(path string) (lints, modifiers map[string]any, err error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read options file %s: %w", path, err)
	}

	if v.IsSet("lints") {
		lints = v.GetStringMap("lints")
	}
	if v.IsSet("modifiers") {
		modifiers = v.GetStringMap("modifiers")
	}
	if lints == nil && modifiers == nil {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNoRecognizedKeys)
	}

	return lints, modifiers, nil
}
