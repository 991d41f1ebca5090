// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Open reads settings from the given file, starting from [Defaults] so
// absent fields keep their default values. The format is selected by
// extension: .toml, or .yaml/.yml.
func Open(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Defaults()
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		err = toml.Unmarshal(data, s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, s)
	default:
		return nil, fmt.Errorf("config: unsupported settings format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the settings to the given file, in the format selected by
// its extension: .toml, or .yaml/.yml.
func (s *Settings) Save(path string) error {
	var data []byte
	var err error
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		data, err = toml.Marshal(s)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	default:
		return fmt.Errorf("config: unsupported settings format %q", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o666)
}
