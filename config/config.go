// Package config provides loading and parsing of lexicon.yaml configuration
// files. A configuration declares named vocabularies with their miss policy,
// unknown surface, and template rule, so managers can be constructed from
// config without recompiling.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nlpkit/lexicon"
	"github.com/nlpkit/lexicon/template"
	"github.com/nlpkit/lexicon/token"
)

// Miss policy names accepted in configuration.
const (
	PolicyStrict   = "strict"
	PolicySentinel = "sentinel"
	PolicyTemplate = "template"
)

// Template rule kinds accepted in configuration.
const (
	TemplateFoldDigits = "fold_digits"
	TemplateIdentity   = "identity"
	TemplateCEL        = "cel"
)

// Config represents a lexicon.yaml configuration file.
type Config struct {
	// Managers declares vocabularies by name.
	Managers map[string]ManagerConfig `yaml:"managers"`
}

// ManagerConfig declares one vocabulary.
type ManagerConfig struct {
	// Policy is the miss discipline: "strict", "sentinel", or "template".
	// Default: "strict".
	Policy string `yaml:"policy,omitempty"`

	// Unknown is the sentinel surface form for the sentinel and template
	// policies. Default: "<unk>".
	Unknown string `yaml:"unknown,omitempty"`

	// Template configures the normalization rule for the template policy.
	Template *TemplateConfig `yaml:"template,omitempty"`
}

// TemplateConfig declares a key normalization rule.
type TemplateConfig struct {
	// Kind selects the rule: "fold_digits", "identity", or "cel".
	Kind string `yaml:"kind"`

	// Expression is the CEL expression for the "cel" kind. It is evaluated
	// with a `surface` string variable and must produce a string.
	Expression string `yaml:"expression,omitempty"`
}

// Load reads and parses a lexicon.yaml file from the given path.
// If the path is a directory, it looks for lexicon.yaml or lexicon.yml in
// that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "lexicon.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "lexicon.yml")
			if _, err := os.Stat(ymlPath); err != nil {
				return nil, fmt.Errorf("no lexicon.yaml or lexicon.yml found in %s", path)
			}
			configPath = ymlPath
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, lexicon.NewConfigurationError("config.Parse",
			fmt.Errorf("%w: %v", lexicon.ErrInvalidConfig, err))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every declared manager for consistency.
func (c *Config) Validate() error {
	if len(c.Managers) == 0 {
		return lexicon.NewValidationError("Config.Validate", lexicon.ErrInvalidConfig).
			WithContext(map[string]any{"reason": "no managers declared"})
	}

	for name, mc := range c.Managers {
		if err := mc.validate(); err != nil {
			var lexErr *lexicon.Error
			if errors.As(err, &lexErr) {
				return lexErr.WithContext(map[string]any{"manager": name})
			}
			return err
		}
	}
	return nil
}

func (mc ManagerConfig) validate() error {
	switch mc.Policy {
	case "", PolicyStrict:
		if mc.Template != nil {
			return lexicon.NewValidationError("Config.Validate", lexicon.ErrInvalidConfig).
				WithContext(map[string]any{"reason": "template rule requires the template policy"})
		}
	case PolicySentinel:
		if mc.Template != nil {
			return lexicon.NewValidationError("Config.Validate", lexicon.ErrInvalidConfig).
				WithContext(map[string]any{"reason": "template rule requires the template policy"})
		}
	case PolicyTemplate:
		if mc.Template == nil {
			return lexicon.NewValidationError("Config.Validate", lexicon.ErrInvalidConfig).
				WithContext(map[string]any{"reason": "template policy requires a template rule"})
		}
		switch mc.Template.Kind {
		case TemplateFoldDigits, TemplateIdentity:
			// No expression needed.
		case TemplateCEL:
			if mc.Template.Expression == "" {
				return lexicon.NewValidationError("Config.Validate", lexicon.ErrInvalidConfig).
					WithContext(map[string]any{"reason": "cel template requires an expression"})
			}
		default:
			return lexicon.NewValidationError("Config.Validate", lexicon.ErrInvalidConfig).
				WithContext(map[string]any{"reason": fmt.Sprintf("unknown template kind %q", mc.Template.Kind)})
		}
	default:
		return lexicon.NewValidationError("Config.Validate", lexicon.ErrInvalidConfig).
			WithContext(map[string]any{"reason": fmt.Sprintf("unknown policy %q", mc.Policy)})
	}
	return nil
}

// Build constructs the named vocabulary.
func (c *Config) Build(name string) (*token.Manager, error) {
	mc, ok := c.Managers[name]
	if !ok {
		return nil, lexicon.NewNotFoundError("Config.Build", lexicon.ErrInvalidConfig).
			WithContext(map[string]any{"manager": name})
	}
	return mc.Build()
}

// Build constructs a vocabulary from a single manager declaration.
func (mc ManagerConfig) Build() (*token.Manager, error) {
	if err := mc.validate(); err != nil {
		return nil, err
	}

	unknown := mc.Unknown
	if unknown == "" {
		unknown = token.UnknownSurface
	}

	switch mc.Policy {
	case "", PolicyStrict:
		return token.NewManager(), nil
	case PolicySentinel:
		return token.NewManager(token.WithSentinel(unknown)), nil
	default: // PolicyTemplate, already validated
		extract, err := mc.Template.compile()
		if err != nil {
			return nil, err
		}
		return token.NewManager(token.WithTemplate(unknown, extract)), nil
	}
}

func (tc *TemplateConfig) compile() (template.Func, error) {
	switch tc.Kind {
	case TemplateFoldDigits:
		return template.FoldDigits, nil
	case TemplateIdentity:
		return template.Identity, nil
	default: // TemplateCEL, already validated
		return template.CompileCEL(tc.Expression)
	}
}
