package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/eppwire/internal/epp"
	"github.com/pelletier/go-toml/v2"
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ClientConfig is the effective eppctl setup: login credentials, the
// services announced at login and the local codec gateway.
type ClientConfig struct {
	ClientID     string        `toml:"client_id"`
	Password     string        `toml:"password"`
	Version      string        `toml:"version"`
	Lang         string        `toml:"lang"`
	ObjURIs      []string      `toml:"obj_uris"`
	ExtURIs      []string      `toml:"ext_uris"`
	ClTRIDPrefix string        `toml:"cltrid_prefix"`
	Output       string        `toml:"output"`
	Framed       bool          `toml:"framed"`
	Gateway      GatewayConfig `toml:"gateway"`
}

type GatewayConfig struct {
	Name        string   `toml:"name"`
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins"`
	Validate    bool     `toml:"validate"`
}

func Default() ClientConfig {
	return ClientConfig{
		Version:      "1.0",
		Lang:         "en",
		ObjURIs:      append([]string(nil), epp.DefaultObjURIs...),
		ExtURIs:      append([]string(nil), epp.DefaultExtURIs...),
		ClTRIDPrefix: "eppctl",
		Output:       OutputJSON,
		Gateway: GatewayConfig{
			Name:        "eppwire",
			Addr:        ":8700",
			CorsOrigins: []string{"http://localhost:3000"},
		},
	}
}

func Validate(cfg ClientConfig) error {
	if strings.TrimSpace(cfg.Version) == "" {
		return fmt.Errorf("client config missing version")
	}
	if strings.TrimSpace(cfg.Lang) == "" {
		return fmt.Errorf("client config missing lang")
	}
	switch cfg.Output {
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("client config output must be %q or %q, got %q", OutputJSON, OutputYAML, cfg.Output)
	}
	for i, uri := range cfg.ObjURIs {
		if strings.TrimSpace(uri) == "" {
			return fmt.Errorf("obj_uris[%d] is empty", i)
		}
	}
	if err := ValidateGateway(cfg.Gateway); err != nil {
		return fmt.Errorf("gateway invalid: %w", err)
	}
	return nil
}

func ValidateGateway(cfg GatewayConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	return nil
}

// ValidateLogin checks the fields a login command needs on top of Validate.
func ValidateLogin(cfg ClientConfig) error {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return fmt.Errorf("client config missing client_id")
	}
	if cfg.Password == "" {
		return fmt.Errorf("client config missing password")
	}
	return nil
}

// TransactionID returns a client transaction id under the configured prefix.
func (c ClientConfig) TransactionID(now time.Time) string {
	return fmt.Sprintf("%s-%d", c.ClTRIDPrefix, now.UnixMilli())
}

// Render prints cfg as TOML with the password masked.
func Render(cfg ClientConfig) (string, error) {
	if cfg.Password != "" {
		cfg.Password = "********"
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("config render failed: %w", err)
	}
	return string(out), nil
}
