package permset_test

import (
	"encoding/json"
	"testing"

	"github.com/harborcrest/userdesk/pkg/permset"
	"github.com/stretchr/testify/require"
)

func TestRenamePreservesValue(t *testing.T) {
	t.Parallel()

	m := permset.New(permset.Pair{Key: "read", Value: true})

	require.NoError(t, m.Rename("read", "write"))

	v, ok := m.Get("write")
	require.True(t, ok)
	require.True(t, v)

	_, ok = m.Get("read")
	require.False(t, ok)
}

func TestRenameKeepsOrder(t *testing.T) {
	t.Parallel()

	m := permset.New(
		permset.Pair{Key: "read", Value: true},
		permset.Pair{Key: "write", Value: false},
		permset.Pair{Key: "delete", Value: false},
	)

	require.NoError(t, m.Rename("write", "update"))
	require.Equal(t, []string{"read", "update", "delete"}, m.Keys())
}

func TestRenameConflicts(t *testing.T) {
	t.Parallel()

	m := permset.New(
		permset.Pair{Key: "read", Value: true},
		permset.Pair{Key: "write", Value: false},
	)

	require.ErrorIs(t, m.Rename("read", "write"), permset.ErrDuplicateKey)
	require.ErrorIs(t, m.Rename("missing", "x"), permset.ErrUnknownKey)
	require.NoError(t, m.Rename("read", "read")) // no-op
}

func TestAddRejectsDuplicates(t *testing.T) {
	t.Parallel()

	m := &permset.Map{}
	require.NoError(t, m.Add("read", true))
	require.ErrorIs(t, m.Add("read", false), permset.ErrDuplicateKey)
	require.Equal(t, 1, m.Len())
}

func TestSetCoercesCaseInsensitively(t *testing.T) {
	t.Parallel()

	m := permset.New(permset.Pair{Key: "read", Value: false})

	require.NoError(t, m.Set("read", "TRUE"))
	v, _ := m.Get("read")
	require.True(t, v)

	require.NoError(t, m.Set("read", " False "))
	v, _ = m.Get("read")
	require.False(t, v)

	require.ErrorIs(t, m.Set("read", "yes"), permset.ErrBadBool)
	require.ErrorIs(t, m.Set("missing", "true"), permset.ErrUnknownKey)
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	m := permset.New(permset.Pair{Key: "read", Value: true})
	c := m.Clone()

	require.NoError(t, c.Rename("read", "write"))
	require.NoError(t, c.Set("write", "false"))

	v, ok := m.Get("read")
	require.True(t, ok)
	require.True(t, v)
}

func TestJSONRoundTripKeepsOrder(t *testing.T) {
	t.Parallel()

	in := []byte(`{"write":false,"read":true,"admin":false}`)

	var m permset.Map
	require.NoError(t, json.Unmarshal(in, &m))
	require.Equal(t, []string{"write", "read", "admin"}, m.Keys())

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	require.JSONEq(t, string(in), string(out))
	require.Equal(t, string(in), string(out)) // byte order, not just set equality
}

func TestUnmarshalRejectsDuplicateKeys(t *testing.T) {
	t.Parallel()

	var m permset.Map
	err := json.Unmarshal([]byte(`{"read":true,"read":false}`), &m)
	require.ErrorIs(t, err, permset.ErrDuplicateKey)
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	for _, literal := range []string{"true", "TRUE", " True "} {
		v, err := permset.ParseBool(literal)
		require.NoError(t, err)
		require.True(t, v)
	}

	v, err := permset.ParseBool("False")
	require.NoError(t, err)
	require.False(t, v)

	_, err = permset.ParseBool("yes")
	require.ErrorIs(t, err, permset.ErrBadBool)
}

func TestRemoveClosesOrderingGap(t *testing.T) {
	t.Parallel()

	m := permset.New(
		permset.Pair{Key: "read", Value: true},
		permset.Pair{Key: "write", Value: false},
		permset.Pair{Key: "admin", Value: true},
	)

	require.NoError(t, m.Remove("write"))
	require.Equal(t, []string{"read", "admin"}, m.Keys())

	require.ErrorIs(t, m.Remove("write"), permset.ErrUnknownKey)
}
