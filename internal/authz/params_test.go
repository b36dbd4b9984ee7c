package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractParams(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Params
	}{
		{
			name: "team only",
			path: "/teams/t1",
			want: Params{TeamID: "t1"},
		},
		{
			name: "nested user image",
			path: "/teams/t1/users/u1/images/i1",
			want: Params{TeamID: "t1", UserID: "u1", ImageID: "i1"},
		},
		{
			name: "api key",
			path: "/teams/t1/api-keys/k1",
			want: Params{TeamID: "t1", APIKeyID: "k1"},
		},
		{
			name: "collection without identifier",
			path: "/teams/t1/users",
			want: Params{TeamID: "t1"},
		},
		{
			name: "repeated collection keeps the last identifier",
			path: "/teams/t1/teams/t2",
			want: Params{TeamID: "t2"},
		},
		{
			name: "unknown segments are ignored",
			path: "/audit-logs",
			want: Params{},
		},
		{
			name: "empty path",
			path: "/",
			want: Params{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractParams(tt.path))
		})
	}
}
