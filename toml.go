package carwash

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// settings describes a settings file as a map of table names to column
// names to column settings. A column setting is a named generator
// string, or an inline table holding either a fixed "value" or a
// "source" file of replacement lines
type settings map[string]map[string]any

// LoadToml loads a toml settings file and returns its Config. Relative
// source paths are taken from the settings file's directory
func LoadToml(file string) (*Config, error) {
	var s settings
	md, err := toml.DecodeFile(file, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: settings file %s: %w", ErrConfiguration, file, err)
	}
	return s.config(md, filepath.Dir(file))
}

// DecodeToml decodes toml settings held in a string. Relative source
// paths are taken from the working directory
func DecodeToml(data string) (*Config, error) {
	var s settings
	md, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %w", ErrConfiguration, err)
	}
	return s.config(md, "")
}

// config builds a Config, ordering tables as they first appear in the
// file. A table may be a [table] header or dotted keys such as
// users.email = "safeEmail". Relative source paths are joined to dir
func (s settings) config(md toml.MetaData, dir string) (*Config, error) {

	cfg := NewConfig()

	for _, key := range md.Keys() {
		table := key[0]
		if _, done := cfg.Rule(table); done {
			continue
		}
		columns, ok := s[table]
		if !ok {
			return nil, configError("%s is not a table", table)
		}
		if len(columns) == 0 {
			return nil, configError("table %s has no columns", table)
		}

		rules := ColumnRules{}
		for column, setting := range columns {
			fm, err := columnFormatter(setting, dir)
			if err != nil {
				return nil, &ScrubError{Table: table, Column: column, Err: err}
			}
			rules[column] = fm
		}
		cfg.Set(table, Columns(rules))
	}

	for table := range s {
		if _, ok := cfg.Rule(table); !ok {
			return nil, configError("table %s has no position in the settings", table)
		}
	}
	return cfg, nil
}

// columnFormatter makes the formatter for a single column setting
func columnFormatter(setting any, dir string) (Formatter, error) {
	switch v := setting.(type) {
	case string:
		return Generator(v), nil

	case map[string]any:
		value, hasValue := v["value"]
		source, hasSource := v["source"]
		switch {
		case hasValue && hasSource:
			return nil, configError("only one of value or source may be set")
		case hasValue:
			return Fixed{Value: value}, nil
		case hasSource:
			path, ok := source.(string)
			if !ok || path == "" {
				return nil, configError("source must be a file path")
			}
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			c, err := NewCycleFile(path)
			if err != nil {
				return nil, configError("source %s: %v", path, err)
			}
			return c, nil
		}
		return nil, configError("inline table needs a value or a source")
	}
	return nil, configError("unsupported setting %v (%T)", setting, setting)
}
