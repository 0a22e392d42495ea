package wpschema

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlobalID(t *testing.T) {
	gid := GlobalID("WP_Post", 42)
	require.Equal(t, "V1BfUG9zdDo0Mg==", gid)

	typeName, id, ok := ParseGlobalID(gid)
	require.True(t, ok)
	require.Equal(t, "WP_Post", typeName)
	require.Equal(t, int64(42), id)
}

func TestParseGlobalIDRejects(t *testing.T) {
	enc := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
	for _, gid := range []string{"not base64!", enc("WP_Post"), enc(":5"), enc("WP_Post:abc"), ""} {
		_, _, ok := ParseGlobalID(gid)
		require.False(t, ok, gid)
	}
}
