package docstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserPaths(t *testing.T) {
	require.Equal(t, "users/ana@clinica.com/clients", UserCollection("ana@clinica.com", ResourceClients))
	require.Equal(t, "users/ana@clinica.com/clients/c1", UserPath("ana@clinica.com", ResourceClients, "c1"))
	require.Equal(t, "users/ana@clinica.com/config/clinicInfo", ClinicInfoPath("ana@clinica.com"))
}

func TestEmailFromPath(t *testing.T) {
	require.Equal(t, "ana@clinica.com", EmailFromPath("users/ana@clinica.com/clients/c1"))
	require.Equal(t, "", EmailFromPath("config/global"))
}

func TestFieldsStripsID(t *testing.T) {
	type entity struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	fields, err := Fields(entity{ID: "e1", Name: "Ana"})
	require.NoError(t, err)

	require.NotContains(t, fields, "id")
	require.Equal(t, "Ana", fields["name"])
}

func TestFieldsOmitsUnsetPatchFields(t *testing.T) {
	type patch struct {
		Name  *string `json:"name,omitempty"`
		Notes *string `json:"notes,omitempty"`
	}

	notes := "pele sensível"
	fields, err := Fields(patch{Notes: &notes})
	require.NoError(t, err)

	require.NotContains(t, fields, "name")
	require.Equal(t, "pele sensível", fields["notes"])
}
