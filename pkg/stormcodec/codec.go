// Package stormcodec provides the formats a Storm database can be stored with.
package stormcodec

import (
	"bytes"
	"sort"

	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
	ugorji "github.com/ugorji/go/codec"
)

var (
	// CBOR encodes to and decodes from CBOR (Concise Binary Object Representation).
	// https://tools.ietf.org/html/rfc7049
	CBOR codec.MarshalUnmarshaler = &handleCodec{name: "cbor", handle: &ugorji.CborHandle{}}

	// Binc encodes to and decodes from Binc.
	// https://github.com/ugorji/binc
	Binc codec.MarshalUnmarshaler = &handleCodec{name: "binc", handle: &ugorji.BincHandle{}}

	codecs = map[string]codec.MarshalUnmarshaler{
		msgpack.Codec.Name(): msgpack.Codec,
		json.Codec.Name():    json.Codec,
		CBOR.Name():          CBOR,
		Binc.Name():          Binc,
	}
)

// Get returns the codec named by name.
// An empty name returns the msgpack codec.
func Get(name string) (codec.MarshalUnmarshaler, error) {
	if name == "" {
		return msgpack.Codec, nil
	}

	c, ok := codecs[name]
	if !ok {
		return nil, errors.Errorf("unsupported storm codec %q (available: %v)", name, Names())
	}
	return c, nil
}

// Names returns the names of all the available codecs.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type handleCodec struct {
	name   string
	handle ugorji.Handle
}

func (c *handleCodec) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := ugorji.NewEncoder(&b, c.handle).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c *handleCodec) Unmarshal(b []byte, v any) error {
	return ugorji.NewDecoderBytes(b, c.handle).Decode(v)
}

func (c *handleCodec) Name() string {
	return c.name
}
