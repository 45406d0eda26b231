package client

import (
	"net/url"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// Configure asks for the server endpoint and the acting identity and stores them.
func Configure() error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	if _, err = url.ParseRequestURI(endpoint); err != nil {
		return errors.Wrap(err, "invalid endpoint")
	}
	cfg.Endpoint = endpoint

	cfg.Space, err = readline.Line("Space (empty for default): ")
	if err != nil {
		return errors.Wrap(err, "could not read space from stdin")
	}

	cfg.User, err = readline.Line("User (empty for server default): ")
	if err != nil {
		return errors.Wrap(err, "could not read user from stdin")
	}

	return Save(cfg)
}
