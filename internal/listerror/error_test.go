package listerror_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mdouchement/lists/internal/listerror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestListError(t *testing.T) {
	err := listerror.New("some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, http.StatusInternalServerError, listerror.StatusCode(err))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, listerror.StatusCode(listerror.NotFound("nope")))
	assert.Equal(t, http.StatusConflict, listerror.StatusCode(listerror.Conflict("nope")))
	assert.Equal(t, http.StatusBadRequest, listerror.StatusCode(listerror.InvalidParameters("nope")))
	assert.Equal(t, http.StatusBadRequest, listerror.StatusCode(listerror.InvalidValue("nope")))
	assert.Equal(t, http.StatusInternalServerError, listerror.StatusCode(errors.New("nope")))
}

func TestMarshal(t *testing.T) {
	payload, err := json.Marshal(listerror.NotFound(`list id: "abc" not found`))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"error":{"tag":"not-found","message":"list id: \"abc\" not found"}}`, string(payload))

	payload, err = json.Marshal(listerror.New("boom"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"error":{"message":"boom"}}`, string(payload))
}
