package eipw

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ethereum/eipw-action/internal/domain"
)

// writeEngineConfig serializes the default-lint and default-modifier
// overrides to a temp TOML file the engine reads via --config. The caller
// removes the file. The table contents came out of the options file and
// are passed through verbatim.
func writeEngineConfig(cfg domain.SeverityConfig) (string, error) {
	doc := map[string]any{}
	if cfg.DefaultLints != nil {
		doc["lints"] = cfg.DefaultLints
	}
	if cfg.DefaultModifiers != nil {
		doc["modifiers"] = cfg.DefaultModifiers
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serialize engine config: %w", err)
	}

	f, err := os.CreateTemp("", "eipw-config-*.toml")
	if err != nil {
		return "", fmt.Errorf("create engine config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write engine config: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close engine config: %w", err)
	}

	return f.Name(), nil
}
