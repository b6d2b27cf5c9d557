// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"
)

// LoadConfigFile merges a YAML or JSON file into Viper. Keys are the Viper
// keys (edge_product_id, ...); values set there override the INI profile.
func LoadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	jsonBytes, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("yaml to json failed: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(jsonBytes, &m); err != nil {
		return fmt.Errorf("failed to parse after JSON conversion: %w", err)
	}

	normalized := make(map[string]any, len(m))
	for k, v := range m {
		normalized[strings.ToLower(strings.ReplaceAll(k, "-", "_"))] = v
	}
	return viper.MergeConfigMap(normalized)
}
