package config

import "github.com/ethereum/eipw-action/internal/domain"

// ResolveSeverity merges the check-list inputs and the optional options
// file into the severity configuration handed to the engine.
func ResolveSeverity(inputs Inputs) (domain.SeverityConfig, error) {
	cfg := domain.SeverityConfig{
		Deny:  inputs.DenyChecks,
		Warn:  inputs.WarnChecks,
		Allow: inputs.AllowChecks,
	}

	if inputs.OptionsFile == "" {
		return cfg, nil
	}

	lints, modifiers, err := LoadOptionsFile(inputs.OptionsFile)
	if err != nil {
		return domain.SeverityConfig{}, err
	}
	cfg.DefaultLints = lints
	cfg.DefaultModifiers = modifiers
	return cfg, nil
}
