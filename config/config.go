// Package config loads the DMM endpoint configuration file: a JSON file of
// the fixed shape {"sapient":{"ip","port","enabled"}}.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

// Endpoint is the DMM address and whether the SAPIENT module is enabled.
type Endpoint struct {
	Host    string `json:"ip"`
	Port    int    `json:"port"`
	Enabled bool   `json:"enabled"`
}

type fileShape struct {
	Sapient Endpoint `json:"sapient"`
}

// Load reads and validates the configuration file at path. A missing file
// is not an error: it returns a disabled Endpoint.
func Load(path string) (Endpoint, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Endpoint{}, nil
		}
		return Endpoint{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var shape fileShape
	if err := json.Unmarshal(b, &shape); err != nil {
		return Endpoint{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	ep := shape.Sapient
	if !ep.Enabled {
		return ep, nil
	}
	if err := ep.Validate(); err != nil {
		return Endpoint{}, err
	}
	return ep, nil
}

// Validate checks the endpoint's host and port are well-formed. It does
// not check Enabled.
func (e Endpoint) Validate() error {
	ip := net.ParseIP(e.Host)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("config: invalid ipv4 address %q", e.Host)
	}
	if e.Port < 1 || e.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", e.Port)
	}
	return nil
}

// Addr returns the "host:port" dial address.
func (e Endpoint) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}
