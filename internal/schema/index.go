package schema

import (
	"sync"

	"github.com/oss-tools/xcdecode/internal/xcerr"
)

// Index is the memoizing lookup from class name to the managedObject node
// describing that class. It is read-mostly and safe for concurrent use by
// many decoder workers: lookups for a missing key are resolved under an
// exclusive lock with a double-checked read, so concurrent misses for the
// same class still insert exactly once.
type Index struct {
	docA, docB Node

	mu    sync.RWMutex
	cache map[string]Node
}

// NewIndex builds an Index over two parsed schema documents. Schema A is
// searched first, Schema B second; the first hit wins and is cached.
func NewIndex(docA, docB *Document) *Index {
	return &Index{
		docA:  docA.Root,
		docB:  docB.Root,
		cache: make(map[string]Node),
	}
}

// Lookup returns the managedObject node for class, searching Schema A then
// Schema B on a cache miss. Concurrent lookups for the same missing class
// observe a single scan and a single cache insertion.
func (idx *Index) Lookup(class string) (Node, error) {
	idx.mu.RLock()
	if n, ok := idx.cache[class]; ok {
		idx.mu.RUnlock()
		return n, nil
	}
	idx.mu.RUnlock()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Another writer may have inserted this class while we waited for the
	// exclusive lock.
	if n, ok := idx.cache[class]; ok {
		return n, nil
	}

	n := findManagedObject(idx.docA, class)
	if n == nil {
		n = findManagedObject(idx.docB, class)
	}
	if n == nil {
		return nil, xcerr.NewUnknownClass(class)
	}

	idx.cache[class] = n
	return n, nil
}

// findManagedObject searches root's subtree for a managedObject node whose
// class attribute equals class. managedObject entries are typically direct
// children of the document element, but some schema documents nest them
// under an intermediate container, so the search descends rather than
// stopping at the first level (spec.md §6 lists both a direct-child and a
// descendant find capability for exactly this reason).
func findManagedObject(root Node, class string) Node {
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if child.Tag() == "managedObject" {
			if v, ok := child.Attr("class"); ok && v == class {
				return child
			}
			continue
		}
		if found := findManagedObject(child, class); found != nil {
			return found
		}
	}
	return nil
}
