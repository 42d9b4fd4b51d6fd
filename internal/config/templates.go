package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "client":
		return clientTemplate, nil
	case "gateway":
		return gatewayTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const clientTemplate = `client_id = "ACME-REG"
password = "change-me"
version = "1.0"
lang = "en"
cltrid_prefix = "acme"
output = "json"
framed = false

[gateway]
name = "eppwire"
addr = ":8700"
cors_origins = ["http://localhost:3000"]
validate = true
`

const gatewayTemplate = `output = "json"

[gateway]
name = "eppwire"
addr = "127.0.0.1:8700"
cors_origins = ["http://localhost:3000"]
validate = false
`
