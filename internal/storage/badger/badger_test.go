package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInMemory verifies get/set round trips without touching disk.
func TestInMemory(t *testing.T) {
	db, err := Open(InMemoryConfig())
	require.NoError(t, err)
	defer db.Close()

	_, found, err := db.Get("records")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, db.Set("records", []byte("[1]")))
	require.NoError(t, db.Set("records", []byte("[2]")))

	v, found, err := db.Get("records")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("[2]"), v)
}

// TestPersistsAcrossReopen verifies data written to a directory survives
// a close and reopen.
func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, db.Set("records", []byte(`[{"name":"A"}]`)))
	require.NoError(t, db.Close())

	db2, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	defer db2.Close()

	v, found, err := db2.Get("records")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[{"name":"A"}]`), v)
}

// TestOpenRequiresPath verifies that persistent mode requires a path.
func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}
