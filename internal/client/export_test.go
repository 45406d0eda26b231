package client

import "io"

// Redirect points the config file and the output to the given values and returns a restore func.
func Redirect(filename string, w io.Writer) func() {
	previousFile, previousOut := configfile, stdout
	configfile, stdout = filename, w
	return func() {
		configfile, stdout = previousFile, previousOut
	}
}
