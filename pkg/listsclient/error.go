package listsclient

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// An Error reprensents an HTTP error returned by the lists server.
type Error struct {
	StatusCode int
	Err        struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseError(r io.Reader, code int) error {
	lerr := Error{StatusCode: code}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&lerr); err != nil || lerr.Err.Message == "" {
		lerr.Err.Message = http.StatusText(code)
	}
	return &lerr
}

func (e *Error) Error() string {
	return e.Err.Message
}

// IsNotFound returns true if err is a 404 returned by the server.
func IsNotFound(err error) bool {
	var lerr *Error
	return errors.As(err, &lerr) && lerr.StatusCode == http.StatusNotFound
}
