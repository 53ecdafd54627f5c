package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the provider allowlist configuration. Providers may be plain
// strings or objects with an "id" field; both forms can appear in one file.
type Config struct {
	Providers []string
}

type configFile struct {
	Providers []yaml.Node `yaml:"providers"`
}

// LoadConfig parses the allowlist from a YAML file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry config: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig parses allowlist YAML from memory.
func ParseConfig(raw []byte) (*Config, error) {
	var file configFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse registry config: %w", err)
	}

	providers := make([]string, 0, len(file.Providers))
	for i, node := range file.Providers {
		id, err := providerID(node)
		if err != nil {
			return nil, fmt.Errorf("registry config provider %d: %w", i, err)
		}
		providers = append(providers, id)
	}
	return &Config{Providers: providers}, nil
}

func providerID(node yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var id string
		if err := node.Decode(&id); err != nil {
			return "", err
		}
		if id == "" {
			return "", fmt.Errorf("provider id must not be empty")
		}
		return id, nil
	case yaml.MappingNode:
		var entry struct {
			ID string `yaml:"id"`
		}
		if err := node.Decode(&entry); err != nil {
			return "", err
		}
		if entry.ID == "" {
			return "", fmt.Errorf("provider entry is missing id")
		}
		return entry.ID, nil
	default:
		return "", fmt.Errorf("provider entry must be a string or a mapping with an id")
	}
}

// BuiltinProviders is the fallback allowlist used when no configuration file
// is available or the configured file fails to parse.
func BuiltinProviders() []string {
	return []string{
		"trusted_bank_001",
		"verified_credit_union_002",
		"authorized_fintech_003",
		"certified_payment_processor_004",
		"licensed_lender_005",
	}
}
