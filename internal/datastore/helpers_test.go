package datastore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func jsonMarshal(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func jsonUnmarshal(raw []byte, v any) error { return json.Unmarshal(raw, v) }
