package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/scy/cred/secret"
	"gopkg.in/yaml.v3"
)

const defaultTokenTemplate = "${Password}"

// Config defines API, auth and server settings.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Auth      AuthConfig      `yaml:"auth"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	MCPServer MCPServerConfig `yaml:"mcpServer"`
}

// APIConfig defines the remote endpoint.
type APIConfig struct {
	BaseURL        string `yaml:"baseURL"`
	UserAgent      string `yaml:"userAgent"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// AuthConfig defines credentials. Secret is a scy resource whose expansion of
// TokenTemplate (default ${Password}) becomes the token.
type AuthConfig struct {
	Token         string `yaml:"token,omitempty"`
	Secret        string `yaml:"secret,omitempty"`
	TokenTemplate string `yaml:"tokenTemplate,omitempty"`
	User          string `yaml:"user,omitempty"`
	Password      string `yaml:"password,omitempty"`
}

// DefaultsConfig defines defaults for created gists.
type DefaultsConfig struct {
	Public      bool   `yaml:"public"`
	Description string `yaml:"description"`
}

// MCPServerConfig defines MCP server settings.
type MCPServerConfig struct {
	Addr string `yaml:"addr"`
	Port int    `yaml:"port"`
}

func LoadConfig(path string) (*Config, error) {
	path, err := expandUserPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Auth.Secret) != "" && cfg.Auth.Token == "" {
		tpl := cfg.Auth.TokenTemplate
		if tpl == "" {
			tpl = defaultTokenTemplate
		}
		token, err := ExpandWithSecret(context.Background(), tpl, cfg.Auth.Secret)
		if err != nil {
			return nil, err
		}
		cfg.Auth.Token = token
	}
	return &cfg, nil
}

// DefaultConfigPath returns ~/.gist/config.yaml when it exists.
func DefaultConfigPath() string {
	path, err := expandUserPath("~/.gist/config.yaml")
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func expandUserPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed[0] != '~' {
		return path, nil
	}
	if trimmed != "~" && !strings.HasPrefix(trimmed, "~/") {
		return "", fmt.Errorf("config: unsupported ~user path: %s", path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if trimmed == "~" {
		return home, nil
	}
	return filepath.Join(home, trimmed[2:]), nil
}

// ExpandWithSecret loads a secret and expands its placeholders in tpl.
func ExpandWithSecret(ctx context.Context, tpl, secretRef string) (string, error) {
	secretRef = strings.TrimSpace(secretRef)
	if secretRef == "" {
		return tpl, nil
	}
	if strings.TrimSpace(tpl) == "" {
		return "", fmt.Errorf("secret %q provided but template is empty", secretRef)
	}
	svc := secret.New()
	sec, err := svc.Lookup(ctx, secret.Resource(secretRef))
	if err != nil {
		return "", err
	}
	return sec.Expand(tpl), nil
}
