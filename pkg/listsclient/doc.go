// Package listsclient is a client of the lists server HTTP API.
package listsclient
