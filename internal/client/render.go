package client

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

var stdout io.Writer = os.Stdout

func render(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "could not render result")
}
