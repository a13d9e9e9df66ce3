package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/eipw-action/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[string]string

func (m mapSource) Input(name string) string { return m[name] }

func TestParseInputs_Defaults(t *testing.T) {
	inputs, err := config.ParseInputs(mapSource{"token": "ghs_abc"})

	require.NoError(t, err)
	assert.Equal(t, "ghs_abc", inputs.Token)
	assert.Empty(t, inputs.WorkingDirectory)
	assert.Equal(t, []string{"EIPS/**"}, inputs.Include)
	assert.Empty(t, inputs.Unchecked)
	assert.Empty(t, inputs.DenyChecks)
	assert.Empty(t, inputs.OptionsFile)
}

func TestParseInputs_MissingToken(t *testing.T) {
	_, err := config.ParseInputs(mapSource{})

	assert.ErrorIs(t, err, config.ErrMissingToken)
}

func TestParseInputs_IncludeIsNewlineSeparated(t *testing.T) {
	inputs, err := config.ParseInputs(mapSource{
		"token":   "t",
		"include": "EIPS/**\n\nERCS/**\n",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"EIPS/**", "ERCS/**"}, inputs.Include)
}

func TestParseInputs_ChecksFilterEmptyEntries(t *testing.T) {
	inputs, err := config.ParseInputs(mapSource{
		"token":        "t",
		"deny-checks":  "preamble-order,,title-length,",
		"warn-checks":  " markdown-ws ",
		"allow-checks": ",,",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"preamble-order", "title-length"}, inputs.DenyChecks)
	assert.Equal(t, []string{"markdown-ws"}, inputs.WarnChecks)
	assert.Empty(t, inputs.AllowChecks)
}

func TestParseInputs_UncheckedNormalizesLegacyNames(t *testing.T) {
	inputs, err := config.ParseInputs(mapSource{
		"token":     "t",
		"unchecked": "1, eip-20, eip-5000.md",
	})

	require.NoError(t, err)
	assert.Equal(t, map[uint64]struct{}{
		1:    {},
		20:   {},
		5000: {},
	}, inputs.Unchecked)
}

func TestParseInputs_UncheckedRejectsGarbage(t *testing.T) {
	_, err := config.ParseInputs(mapSource{
		"token":     "t",
		"unchecked": "1,notanumber",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unchecked")
}

func writeOptionsFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eipw.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadOptionsFile_LintsAndModifiers(t *testing.T) {
	path := writeOptionsFile(t, `
[lints.preamble-order]
kind = "preamble-order"

[modifiers.default-annotation]
kind = "set-default-annotation"
`)

	lints, modifiers, err := config.LoadOptionsFile(path)

	require.NoError(t, err)
	require.Contains(t, lints, "preamble-order")
	require.Contains(t, modifiers, "default-annotation")
}

func TestLoadOptionsFile_LintsOnly(t *testing.T) {
	path := writeOptionsFile(t, `
[lints.title-max-length]
kind = "title-max-length"
max = 44
`)

	lints, modifiers, err := config.LoadOptionsFile(path)

	require.NoError(t, err)
	assert.NotNil(t, lints)
	assert.Nil(t, modifiers)
}

func TestLoadOptionsFile_NoRecognizedKeys(t *testing.T) {
	path := writeOptionsFile(t, `
[unrelated]
key = "value"
`)

	_, _, err := config.LoadOptionsFile(path)

	assert.ErrorIs(t, err, config.ErrNoRecognizedKeys)
}

func TestLoadOptionsFile_Unparseable(t *testing.T) {
	path := writeOptionsFile(t, "= this is not toml [")

	_, _, err := config.LoadOptionsFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read options file")
}

func TestLoadOptionsFile_Missing(t *testing.T) {
	_, _, err := config.LoadOptionsFile(filepath.Join(t.TempDir(), "absent.toml"))

	require.Error(t, err)
}

func TestResolveSeverity_WithoutOptionsFile(t *testing.T) {
	inputs := config.Inputs{
		DenyChecks: []string{"preamble-order"},
		WarnChecks: []string{"markdown-ws"},
	}

	cfg, err := config.ResolveSeverity(inputs)

	require.NoError(t, err)
	assert.Equal(t, []string{"preamble-order"}, cfg.Deny)
	assert.Equal(t, []string{"markdown-ws"}, cfg.Warn)
	assert.Nil(t, cfg.DefaultLints)
	assert.Nil(t, cfg.DefaultModifiers)
}

func TestResolveSeverity_MergesOptionsFile(t *testing.T) {
	path := writeOptionsFile(t, `
[lints.preamble-order]
kind = "preamble-order"
`)
	inputs := config.Inputs{AllowChecks: []string{"title-length"}, OptionsFile: path}

	cfg, err := config.ResolveSeverity(inputs)

	require.NoError(t, err)
	assert.Equal(t, []string{"title-length"}, cfg.Allow)
	assert.Contains(t, cfg.DefaultLints, "preamble-order")
}

func TestResolveSeverity_PropagatesOptionsError(t *testing.T) {
	path := writeOptionsFile(t, `answer = 42`)
	inputs := config.Inputs{OptionsFile: path}

	_, err := config.ResolveSeverity(inputs)

	assert.ErrorIs(t, err, config.ErrNoRecognizedKeys)
}
