package stormcodec_test

import (
	"testing"

	"github.com/mdouchement/lists/pkg/stormcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string
	Count int
}

func TestGet(t *testing.T) {
	for _, name := range []string{"msgpack", "json", "cbor", "binc"} {
		t.Run(name, func(t *testing.T) {
			c, err := stormcodec.Get(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			payload, err := c.Marshal(&record{Name: "blocked", Count: 42})
			require.NoError(t, err)

			var r record
			require.NoError(t, c.Unmarshal(payload, &r))
			assert.Equal(t, record{Name: "blocked", Count: 42}, r)
		})
	}
}

func TestGet_Default(t *testing.T) {
	c, err := stormcodec.Get("")
	require.NoError(t, err)
	assert.Equal(t, "msgpack", c.Name())
}

func TestGet_Unsupported(t *testing.T) {
	_, err := stormcodec.Get("gob")
	assert.EqualError(t, err, `unsupported storm codec "gob" (available: [binc cbor json msgpack])`)
}
