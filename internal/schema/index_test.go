package schema

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func docWith(classes ...string) *Document {
	var children []Node
	for _, c := range classes {
		children = append(children, node("managedObject", map[string]string{"class": c}))
	}
	return &Document{Root: node("root", nil, children...)}
}

func TestLookupFindsInSchemaAThenB(t *testing.T) {
	a := docWith("Radio")
	b := docWith("GNSS")
	idx := NewIndex(a, b)

	n, err := idx.Lookup("Radio")
	require.NoError(t, err)
	require.Equal(t, "Radio", mustAttr(t, n, "class"))

	n, err = idx.Lookup("GNSS")
	require.NoError(t, err)
	require.Equal(t, "GNSS", mustAttr(t, n, "class"))
}

func TestLookupUnknownClass(t *testing.T) {
	idx := NewIndex(docWith(), docWith())
	_, err := idx.Lookup("Nope")
	require.Error(t, err)
}

func TestLookupMemoizesAcrossConcurrentCallers(t *testing.T) {
	idx := NewIndex(docWith("Radio"), docWith())

	var wg sync.WaitGroup
	results := make([]Node, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := idx.Lookup("Radio")
			require.NoError(t, err)
			results[i] = n
		}(i)
	}
	wg.Wait()

	first := results[0]
	for _, r := range results {
		require.Same(t, first, r)
	}
}

func mustAttr(t *testing.T, n Node, name string) string {
	t.Helper()
	v, ok := n.Attr(name)
	require.True(t, ok)
	return v
}
