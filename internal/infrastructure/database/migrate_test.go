package database

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFilesEmbedded(t *testing.T) {
	files, err := fs.Glob(schemaFS, "schema/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "schema/001_init.sql")
}

// Page counts are validated as 64-bit integers
func TestSchemaPageCountIsBigint(t *testing.T) {
	ddl, err := schemaFS.ReadFile("schema/001_init.sql")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`nombre_pages\s+BIGINT\s+NOT NULL`), string(ddl))
}
