package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONPlain(t *testing.T) {
	var out struct {
		Happy float64 `json:"happy"`
	}
	require.NoError(t, DecodeJSON(`{"happy": 0.4}`, &out))
	assert.Equal(t, 0.4, out.Happy)
}

func TestDecodeJSONFenced(t *testing.T) {
	var out struct {
		Happy float64 `json:"happy"`
	}
	raw := "```json\n{\"happy\": 0.7}\n```"
	require.NoError(t, DecodeJSON(raw, &out))
	assert.Equal(t, 0.7, out.Happy)
}

func TestDecodeJSONWithSurroundingProse(t *testing.T) {
	var out struct {
		Happy float64 `json:"happy"`
	}
	raw := "Here is the result:\n{\"happy\": 0.2}\nHope that helps!"
	require.NoError(t, DecodeJSON(raw, &out))
	assert.Equal(t, 0.2, out.Happy)
}

func TestDecodeJSONInvalid(t *testing.T) {
	var out map[string]float64
	assert.Error(t, DecodeJSON("not json at all", &out))
}

func TestDecodeJSONList(t *testing.T) {
	var out []string
	require.NoError(t, DecodeJSON("```json\n[\"a\",\"b\"]\n```", &out))
	assert.Equal(t, []string{"a", "b"}, out)
}
