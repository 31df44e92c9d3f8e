package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarkdb/colcomp/catalog"
	"github.com/quarkdb/colcomp/format"
)

func TestOptions_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a, b  catalog.Options
		equal bool
	}{
		{"both empty", nil, catalog.Options{}, true},
		{"same order", catalog.Options{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, catalog.Options{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, true},
		{"different order", catalog.Options{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, catalog.Options{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}, true},
		{"different value", catalog.Options{{Key: "a", Value: "1"}}, catalog.Options{{Key: "a", Value: "2"}}, false},
		{"different length", catalog.Options{{Key: "a", Value: "1"}}, nil, false},
		{"duplicate pairs respected", catalog.Options{{Key: "a", Value: "1"}, {Key: "a", Value: "1"}}, catalog.Options{{Key: "a", Value: "1"}, {Key: "a", Value: "2"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.equal, tt.a.Equal(tt.b))
			require.Equal(t, tt.equal, tt.b.Equal(tt.a), "equality is symmetric")
		})
	}
}

func TestOptions_Text(t *testing.T) {
	require.Empty(t, catalog.Options{}.Text())

	opts := catalog.Options{{Key: "level", Value: "3"}, {Key: "window", Value: "8"}}
	require.Equal(t, "level=3, window=8", opts.Text())

	// The textual form keeps the order equality ignores.
	reordered := catalog.Options{{Key: "window", Value: "8"}, {Key: "level", Value: "3"}}
	require.Equal(t, "window=8, level=3", reordered.Text())
	require.True(t, opts.Equal(reordered))
}

func TestOptions_Fingerprint(t *testing.T) {
	a := catalog.Options{{Key: "level", Value: "3"}, {Key: "window", Value: "8"}}
	b := catalog.Options{{Key: "window", Value: "8"}, {Key: "level", Value: "3"}}
	require.Equal(t, a.Fingerprint(), b.Fingerprint(), "equal option lists share a fingerprint")

	c := catalog.Options{{Key: "level", Value: "4"}}
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestConfigID_Builtin(t *testing.T) {
	require.False(t, catalog.InvalidConfigID.Builtin())
	require.False(t, catalog.InvalidConfigID.Valid())

	id := catalog.BuiltinConfigID(format.StorageLZ4)
	require.True(t, id.Builtin())
	require.True(t, id.Valid())

	sid, ok := catalog.BuiltinStorageID(id)
	require.True(t, ok)
	require.Equal(t, format.StorageLZ4, sid)

	normal := catalog.FirstNormalConfigID
	require.False(t, normal.Builtin())
	_, ok = catalog.BuiltinStorageID(normal)
	require.False(t, ok)
}

func TestEdgePattern_Match(t *testing.T) {
	edge := catalog.Edge{
		Dependent:  catalog.TableColumnRef(100, 1),
		Referenced: catalog.ConfigRef(20000),
	}

	require.True(t, catalog.EdgePattern{}.Match(edge), "empty pattern matches everything")

	dep := catalog.TableColumnRef(100, 1)
	require.True(t, catalog.EdgePattern{Dependent: &dep}.Match(edge))

	other := catalog.TableColumnRef(100, 2)
	require.False(t, catalog.EdgePattern{Dependent: &other}.Match(edge))

	ref := catalog.ConfigRef(20000)
	require.True(t, catalog.EdgePattern{Dependent: &dep, Referenced: &ref}.Match(edge))

	wrongRef := catalog.MethodRef(format.MethodLZ4)
	require.False(t, catalog.EdgePattern{Referenced: &wrongRef}.Match(edge))
}
