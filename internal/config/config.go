package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"componentengine/internal/compiler"
	"componentengine/internal/parser"
	"componentengine/internal/resolver"
	"componentengine/internal/types"
	"github.com/rs/zerolog"
)

const DefaultFile = "afx.json"

type Flagger interface {
	String(name string) string
}

// File is the on-disk project configuration.
type File struct {
	Extension string            `json:"extension,omitempty"`
	Globals   map[string]string `json:"globals,omitempty"`
	LogLevel  string            `json:"logLevel,omitempty"`
}

type Config struct {
	ConfigFilePath string
	Extension      string
	Globals        map[string]string
	LogLevel       zerolog.Level
}

func Read(flags Flagger, getEnv func(string) string) (*Config, error) {
	// flags - optional
	configFile := flags.String("config")

	file := &File{}
	if configFile != "" {
		var err error
		file, err = ReadFile(configFile)
		if err != nil {
			return nil, err
		}
	}

	extension := file.Extension
	if extension == "" {
		extension = compiler.DefaultExtension
	}
	if extension[0] != '.' {
		return nil, fmt.Errorf("extension %q must start with a dot", extension)
	}

	levelName := flags.String("log-level")
	if levelName == "" {
		levelName = getEnv("AFX_LOG_LEVEL")
	}
	if levelName == "" {
		levelName = file.LogLevel
	}
	level := zerolog.InfoLevel
	if levelName != "" {
		var err error
		level, err = zerolog.ParseLevel(levelName)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
		}
	}

	cfg := Config{
		ConfigFilePath: configFile,
		Extension:      extension,
		Globals:        file.Globals,
		LogLevel:       level,
	}

	return &cfg, nil
}

// Scope turns the configured globals into the root scope shared by every
// module. Only built-in type names are available here.
func (c *Config) Scope() (*types.Scope, error) {
	if len(c.Globals) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(c.Globals))
	for name := range c.Globals {
		names = append(names, name)
	}
	sort.Strings(names)

	bindings := make(map[string]types.Type, len(names))
	for _, name := range names {
		ref, err := parser.ParseTypeReferenceString(c.Globals[name])
		if err != nil {
			return nil, fmt.Errorf("global %s: %w", name, err)
		}
		t, err := resolver.DeclaredTypes(nil).ResolveType(ref)
		if err != nil {
			return nil, fmt.Errorf("global %s: %w", name, err)
		}
		bindings[name] = t
	}
	return types.NewScope(bindings), nil
}

// Default is the file written by "afx init".
func Default() *File {
	return &File{
		Extension: compiler.DefaultExtension,
		LogLevel:  zerolog.InfoLevel.String(),
	}
}

func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	return &file, nil
}

func SaveFile(path string, file *File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config file: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("save config file: %w", err)
	}

	return nil
}
