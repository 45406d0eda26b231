package database_test

import (
	"os"
	"testing"

	"github.com/mdouchement/lists/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempfile(t *testing.T) string {
	tmpfile, err := os.CreateTemp("", "lists.*.db")
	require.NoError(t, err)
	filename := tmpfile.Name()
	tmpfile.Close()

	t.Cleanup(func() {
		os.RemoveAll(filename)
	})
	return filename
}

func TestStorm(t *testing.T) {
	db, err := database.StormOpen(tempfile(t), nil)
	require.NoError(t, err)
	defer db.Close()

	testClient(t, db)
}

func TestStormInitAndReIndex(t *testing.T) {
	filename := tempfile(t)

	err := database.StormInit(filename, nil, []string{"lists-default"}, []string{"list-items-default"})
	assert.NoError(t, err)

	err = database.StormReIndex(filename, nil, []string{"lists-default"}, []string{"list-items-default"})
	assert.NoError(t, err)
}
