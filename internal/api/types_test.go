package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"number", `1`, "1"},
		{"large number", `9007199254740993`, "9007199254740993"},
		{"string", `"abc-123"`, "abc-123"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestID_UnmarshalJSONRejectsObjects(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestUserRecord_ID(t *testing.T) {
	tests := []struct {
		name   string
		record UserRecord
		want   string
	}{
		{"id preferred", UserRecord{"id": "u1", "uid": "u2", "email": "a@b.c"}, "u1"},
		{"uid fallback", UserRecord{"uid": "u2", "email": "a@b.c"}, "u2"},
		{"email fallback", UserRecord{"email": "a@b.c"}, "a@b.c"},
		{"numeric id", UserRecord{"id": float64(7)}, "7"},
		{"empty record", UserRecord{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.ID())
		})
	}
}

func TestUserRecord_Role(t *testing.T) {
	assert.Equal(t, "doctor", UserRecord{"occupation": "doctor"}.Role())
	assert.Equal(t, "patient", UserRecord{"userType": "patient"}.Role())
	assert.Equal(t, "admin", UserRecord{"role": "admin", "occupation": "doctor"}.Role())
	assert.Empty(t, UserRecord{}.Role())

	assert.True(t, UserRecord{"occupation": "doctor"}.IsDoctor())
	assert.False(t, UserRecord{"occupation": "patient"}.IsDoctor())
}

func TestUserRecord_SurvivesJSONRoundTrip(t *testing.T) {
	raw := `{"id":"u1","email":"user@x.com","occupation":"doctor","extras":{"clinic":"north"}}`

	var record UserRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))

	assert.Equal(t, "u1", record.ID())
	assert.Equal(t, "doctor", record.Role())
	assert.Contains(t, record, "extras")
}
