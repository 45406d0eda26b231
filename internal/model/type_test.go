package model_test

import (
	"testing"

	"github.com/mdouchement/lists/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	typ, err := model.ParseType("ip")
	assert.NoError(t, err)
	assert.Equal(t, model.TypeIP, typ)

	_, err = model.ParseType("geo_shape")
	assert.EqualError(t, err, `unsupported list type: "geo_shape"`)

	assert.True(t, model.TypeKeyword.Valid())
	assert.False(t, model.Type("").Valid())
}

func TestTypeParseValue(t *testing.T) {
	tests := []struct {
		name     string
		typ      model.Type
		raw      string
		expected string
		err      string
	}{
		{name: "ipv4", typ: model.TypeIP, raw: " 127.0.0.1 ", expected: "127.0.0.1"},
		{name: "ipv6 canonical", typ: model.TypeIP, raw: "2001:0db8::0001", expected: "2001:db8::1"},
		{name: "bad ip", typ: model.TypeIP, raw: "127.0.0.256", err: `invalid ip address for type ip: "127.0.0.256"`},
		{name: "blank", typ: model.TypeKeyword, raw: "  ", err: `value can't be blank for type keyword: ""`},
		{name: "keyword", typ: model.TypeKeyword, raw: "evil.exe", expected: "evil.exe"},
		{name: "cidr is masked", typ: model.TypeIPRange, raw: "10.1.2.3/8", expected: "10.0.0.0/8"},
		{name: "range", typ: model.TypeIPRange, raw: "10.0.0.1 - 10.0.0.9", expected: "10.0.0.1-10.0.0.9"},
		{name: "reversed range", typ: model.TypeIPRange, raw: "10.0.0.9-10.0.0.1", err: `range start is greater than range end for type ip_range: "10.0.0.9-10.0.0.1"`},
		{name: "mixed family", typ: model.TypeIPRange, raw: "10.0.0.1-::1", err: `range bounds must be of the same family for type ip_range: "10.0.0.1-::1"`},
		{name: "date", typ: model.TypeDate, raw: "2020-04-20 08:00:00", expected: "2020-04-20T08:00:00Z"},
		{name: "bad date", typ: model.TypeDate, raw: "not a date", err: `invalid date for type date: "not a date"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.typ.ParseValue(tt.raw)
			if tt.err != "" {
				assert.EqualError(t, err, tt.err)
				assert.IsType(t, &model.ValueError{}, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}
