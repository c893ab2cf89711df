package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"sheetgrid/config"
)

const defaultConfigName = ".sheetgrid.yaml"

// configTargetPath picks the file the config subcommands operate on: the
// --configFile flag, then the file viper loaded, then $HOME/.sheetgrid.yaml.
func configTargetPath(flagValue, loadedFile string) (string, error) {
	for _, candidate := range []string{flagValue, loadedFile} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigName), nil
}

// writeExampleConfig writes the template to path. Existing files are left
// untouched unless overwrite is set; the bool reports whether it wrote.
func writeExampleConfig(path string, overwrite bool) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return false, nil
		}
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("writing example config failed: %w", err)
	}
	return true, nil
}

func editorCommand(visual, editor, path string) (*exec.Cmd, error) {
	value := "vi"
	for _, candidate := range []string{visual, editor} {
		if strings.TrimSpace(candidate) != "" {
			value = candidate
			break
		}
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	args := append(fields[1:], path)
	return exec.Command(fields[0], args...), nil
}

func describeConfig(cfg config.Config) []string {
	lines := []string{
		fmt.Sprintf("sheets.candidates: %d", len(cfg.Sheets.Candidates)),
	}
	for i, candidate := range cfg.Sheets.Candidates {
		lines = append(lines, fmt.Sprintf("sheets.candidates[%d]: %s", i, candidate))
	}

	password := "(none)"
	if cfg.Provider.Password != "" {
		password = "(set)"
	}
	journal := "disabled"
	if cfg.Journal.Enabled {
		journal = "enabled"
	}

	lines = append(lines,
		fmt.Sprintf("convert.address_policy: %s", cfg.Convert.AddressPolicy),
		fmt.Sprintf("convert.raw_values: %t", cfg.Convert.RawValues),
		fmt.Sprintf("provider.password: %s", password),
		fmt.Sprintf("provider.unzip_size_limit: %d", cfg.Provider.UnzipSizeLimit),
		fmt.Sprintf("provider.unzip_xml_size_limit: %d", cfg.Provider.UnzipXMLSizeLimit),
		fmt.Sprintf("server.port: %d", cfg.Server.Port),
		fmt.Sprintf("server.allowed_roots: %s", strings.Join(cfg.Server.AllowedRoots, ", ")),
		fmt.Sprintf("journal: %s (%s)", journal, cfg.Journal.DBPath),
	)
	return lines
}
