package notes_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dashstate/pkg/notes"
)

func TestParsePriority(t *testing.T) {
	for _, p := range notes.Priorities() {
		parsed, err := notes.ParsePriority(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := notes.ParsePriority("urgent")
	assert.ErrorIs(t, err, notes.ErrInvalidPriority)
	_, err = notes.ParsePriority("Important")
	assert.ErrorIs(t, err, notes.ErrInvalidPriority)
}

func TestPriority_JSON(t *testing.T) {
	data, err := json.Marshal(notes.Delayed)
	require.NoError(t, err)
	assert.Equal(t, `"delayed"`, string(data))

	_, err = json.Marshal(notes.Priority(0))
	assert.Error(t, err)

	var p notes.Priority
	assert.Error(t, json.Unmarshal([]byte(`"later"`), &p))
}
