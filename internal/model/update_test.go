package model_test

import (
	"testing"

	"github.com/mdouchement/lists/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestUpdate(t *testing.T) {
	u := model.Unchanged[string]()
	assert.False(t, u.IsSet())
	assert.Equal(t, "previous", u.Apply("previous"))
	assert.Nil(t, u.Ptr())

	u = model.SetTo("")
	assert.True(t, u.IsSet())
	assert.Equal(t, "", u.Apply("previous"))

	v, ok := model.SetTo("next").Get()
	assert.True(t, ok)
	assert.Equal(t, "next", v)

	s := "from pointer"
	assert.Equal(t, "from pointer", model.SetToPtr(&s).Apply("previous"))
	assert.Equal(t, "previous", model.SetToPtr[string](nil).Apply("previous"))
}
