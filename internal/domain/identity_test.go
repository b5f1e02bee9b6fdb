package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{
			name:   "id key",
			input:  `{"id":"abc","email":"a@b.com","userType":"admin"}`,
			wantID: "abc",
		},
		{
			name:   "mongo _id key",
			input:  `{"_id":"64f1","email":"a@b.com","userType":"admin"}`,
			wantID: "64f1",
		},
		{
			name:   "id wins over _id",
			input:  `{"id":"abc","_id":"64f1","email":"a@b.com","userType":"admin"}`,
			wantID: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id Identity
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.wantID, id.ID)
			assert.Equal(t, "a@b.com", id.Email)
			assert.Equal(t, RoleAdmin, id.Role())
		})
	}
}

func TestIdentity_UnmarshalJSON_Invalid(t *testing.T) {
	var id Identity
	assert.Error(t, json.Unmarshal([]byte(`{"id": 5`), &id))
}

func TestIdentity_NilSafe(t *testing.T) {
	var id *Identity

	assert.Equal(t, Role(""), id.Role())
	assert.False(t, id.IsAllowed())
	assert.Equal(t, "", id.DisplayName())
}

func TestIdentity_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		want     string
	}{
		{"full name", Identity{Email: "a@b.com", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first only", Identity{Email: "a@b.com", FirstName: "Ada"}, "Ada"},
		{"last only", Identity{Email: "a@b.com", LastName: "Lovelace"}, "Lovelace"},
		{"email fallback", Identity{Email: "a@b.com"}, "a@b.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.identity.DisplayName())
		})
	}
}
