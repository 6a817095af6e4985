package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		requestType domain.RequestType
		wantTable   string
		wantErr     bool
	}{
		{name: "Private move", requestType: PrivateMove, wantTable: "private_moves"},
		{name: "Company move", requestType: CompanyMove, wantTable: "company_moves"},
		{name: "Storage service", requestType: StorageService, wantTable: "storage_services"},
		{name: "Unknown type", requestType: "piano_tuning", wantErr: true},
		{name: "Empty type", requestType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Resolve(tt.requestType)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownRequestType))
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTable, entry.Table)
			assert.Equal(t, tt.requestType, entry.Type)
		})
	}
}

func TestTypes(t *testing.T) {
	types := Types()

	assert.Len(t, types, 8)
	for i := 1; i < len(types); i++ {
		assert.True(t, types[i-1] < types[i])
	}
	for _, rt := range types {
		assert.True(t, IsRegistered(rt))
	}
	assert.False(t, IsRegistered("piano_tuning"))
}

func TestEntry_Select(t *testing.T) {
	entry, err := Resolve(CompanyMove)
	require.NoError(t, err)

	query := entry.Select()

	assert.True(t, strings.HasPrefix(query, "SELECT 'company_move' AS request_type, id AS id, contact_email AS requester_email"))
	assert.Contains(t, query, "NULL::text AS requester_ssn")
	assert.Contains(t, query, "FALSE AS rut_eligible")
	assert.Contains(t, query, "extra_insurance AS extra_insurance")
	assert.True(t, strings.HasSuffix(query, " FROM company_moves"))
}

func TestEntry_SelectProjectsEveryColumn(t *testing.T) {
	for _, rt := range Types() {
		entry, err := Resolve(rt)
		require.NoError(t, err)

		query := entry.Select()
		for _, col := range Columns {
			assert.Contains(t, query, " AS "+col, "type %s misses column %s", rt, col)
		}
	}
}
