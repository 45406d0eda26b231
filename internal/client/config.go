package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mdouchement/lists/pkg/listsclient"
	"github.com/pkg/errors"
)

var configfile = ".listsctl"

// A Config holds client's configuration.
type Config struct {
	Endpoint string `json:"endpoint"`
	Space    string `json:"space,omitempty"`
	User     string `json:"user,omitempty"`
}

// Remove removes the config file from the current directory.
func Remove() error {
	return os.Remove(configfile)
}

// Load gets the configuration from the current folder according to `configfile`.
func Load() (Config, error) {
	var cfg Config

	payload, err := os.ReadFile(configfile)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read config file (run `listsctl configure` first)")
	}

	err = json.Unmarshal(payload, &cfg)
	return cfg, errors.Wrap(err, "could not parse config")
}

// Save stores the configuration in the current folder according to `configfile`.
func Save(cfg Config) error {
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize config")
	}

	fmt.Fprintln(stdout, "Storing config in current directory as "+configfile)
	err = os.WriteFile(configfile, payload, 0o600)
	return errors.Wrap(err, "could not store config")
}

// Connect loads the configuration and returns a client for its endpoint.
// A non-empty space overrides the configured one.
func Connect(space string) (listsclient.Client, error) {
	cfg, err := Load()
	if err != nil {
		return nil, errors.Wrap(err, "could not load config")
	}

	client, err := listsclient.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach lists endpoint")
	}

	if space == "" {
		space = cfg.Space
	}
	client.SetSpace(space)
	client.SetUser(cfg.User)

	return client, nil
}
