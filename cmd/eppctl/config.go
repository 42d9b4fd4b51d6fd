package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/eppwire/internal/config"
)

// EnvPassword overrides the configured password so it can stay out of the file.
const EnvPassword = "EPPCTL_PASSWORD"

type fileConfig struct {
	ClientID     string   `toml:"client_id"`
	Password     string   `toml:"password"`
	Version      string   `toml:"version"`
	Lang         string   `toml:"lang"`
	ObjURIs      []string `toml:"obj_uris"`
	ExtURIs      []string `toml:"ext_uris"`
	ClTRIDPrefix string   `toml:"cltrid_prefix"`
	Output       string   `toml:"output"`
	Framed       bool     `toml:"framed"`
	Gateway      struct {
		Name        string   `toml:"name"`
		Addr        string   `toml:"addr"`
		CorsOrigins []string `toml:"cors_origins"`
		Validate    bool     `toml:"validate"`
	} `toml:"gateway"`
}

func loadClientConfig(path string) (config.ClientConfig, error) {
	cfg := config.Default()

	if strings.TrimSpace(path) != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return config.ClientConfig{}, fmt.Errorf("load eppctl config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return config.ClientConfig{}, fmt.Errorf("load eppctl config: unknown key %q", undecoded[0].String())
		}

		if meta.IsDefined("client_id") {
			cfg.ClientID = strings.TrimSpace(raw.ClientID)
		}
		if meta.IsDefined("password") {
			cfg.Password = raw.Password
		}
		if meta.IsDefined("version") {
			cfg.Version = strings.TrimSpace(raw.Version)
		}
		if meta.IsDefined("lang") {
			cfg.Lang = strings.TrimSpace(raw.Lang)
		}
		if meta.IsDefined("obj_uris") {
			cfg.ObjURIs = normalizeList(raw.ObjURIs)
		}
		if meta.IsDefined("ext_uris") {
			cfg.ExtURIs = normalizeList(raw.ExtURIs)
		}
		if meta.IsDefined("cltrid_prefix") {
			cfg.ClTRIDPrefix = strings.TrimSpace(raw.ClTRIDPrefix)
		}
		if meta.IsDefined("output") {
			cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
		}
		if meta.IsDefined("framed") {
			cfg.Framed = raw.Framed
		}
		if meta.IsDefined("gateway", "name") {
			cfg.Gateway.Name = strings.TrimSpace(raw.Gateway.Name)
		}
		if meta.IsDefined("gateway", "addr") {
			cfg.Gateway.Addr = strings.TrimSpace(raw.Gateway.Addr)
		}
		if meta.IsDefined("gateway", "cors_origins") {
			cfg.Gateway.CorsOrigins = normalizeList(raw.Gateway.CorsOrigins)
		}
		if meta.IsDefined("gateway", "validate") {
			cfg.Gateway.Validate = raw.Gateway.Validate
		}
	}

	if pw, ok := os.LookupEnv(EnvPassword); ok {
		cfg.Password = pw
	}
	if err := config.Validate(cfg); err != nil {
		return config.ClientConfig{}, err
	}
	return cfg, nil
}

func normalizeList(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, item := range in {
		v := strings.TrimSpace(item)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
