package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const sweetSwapFile = "sweetswap.yaml"

// LoadSweetSwap loads the Sweet Swap configuration.
// Search order: customPath -> ~/.sweetswap/configs/sweetswap.yaml ->
// ./configs/sweetswap.yaml -> embedded default -> hardcoded default.
// Keys missing from a file keep their default values.
func LoadSweetSwap(customPath string) (SweetSwapConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SweetSwapConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseSweetSwap(data)
		if err != nil {
			return SweetSwapConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(sweetSwapFile), filepath.Join("configs", sweetSwapFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseSweetSwap(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseSweetSwap(defaultSweetSwapYAML)
	if err != nil {
		return DefaultSweetSwapConfig(), nil
	}
	return cfg, nil
}

func parseSweetSwap(data []byte) (SweetSwapConfig, error) {
	cfg := DefaultSweetSwapConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SweetSwapConfig{}, err
	}
	return cfg, nil
}

func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sweetswap", "configs", filename)
}
