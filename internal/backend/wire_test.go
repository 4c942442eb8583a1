package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexTimeForms(t *testing.T) {
	want := time.Date(2026, 10, 23, 8, 0, 0, 0, time.UTC)
	for _, in := range []string{`1792742400000`, `1792742400`, `"1792742400000"`, `"2026-10-23T08:00:00Z"`} {
		var f FlexTime
		require.NoError(t, json.Unmarshal([]byte(in), &f), in)
		assert.True(t, f.Time().Equal(want), "%s -> %s", in, f.Time())
	}
}

func TestFlexBoolRejectsGarbage(t *testing.T) {
	var b FlexBool
	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &b))
	require.NoError(t, json.Unmarshal([]byte(`"1"`), &b))
	assert.True(t, bool(b))
}
