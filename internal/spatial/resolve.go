package spatial

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LocalConfigFile is the middle precedence tier, looked up in the working
// directory.
const LocalConfigFile = "sbgen-spatial.yaml"

// Resolve loads and compiles the spatial config with first-found-wins
// precedence: explicit path, then ./sbgen-spatial.yaml, then built-in
// defaults. Tiers never merge; the first tier that exists supplies the whole
// document. Columns the chosen document does not configure fall back to the
// built-in per-column default.
func Resolve(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		fc, err := loadFile(explicitPath)
		if err != nil {
			return nil, err
		}
		return Compile(fc, explicitPath)
	}

	if _, err := os.Stat(LocalConfigFile); err == nil {
		fc, err := loadFile(LocalConfigFile)
		if err != nil {
			return nil, err
		}
		return Compile(fc, LocalConfigFile)
	}

	return Compile(Defaults(), "builtin")
}

func loadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("read spatial config: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
	}
	if len(fc.Columns) == 0 {
		return FileConfig{}, fmt.Errorf("%w: %s configures no columns", ErrConfig, path)
	}
	return fc, nil
}
