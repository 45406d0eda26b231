package client

import (
	"github.com/pkg/errors"
)

// Logout forgets the stored configuration.
func Logout() error {
	if _, err := Load(); err != nil {
		return errors.Wrap(err, "could not load config")
	}

	return errors.Wrap(Remove(), "could not remove config file")
}
