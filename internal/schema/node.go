// Package schema provides the schema node contract, the memoizing class
// index (C2), and the field resolver (C3) that navigates a managedObject
// subtree to classify a decoded tag's field.
package schema

import "github.com/beevik/etree"

// Node is the minimal capability set the core requires from a schema
// document: a tag name, attribute lookup by name, and ordered children.
// This narrows the etree API down to exactly what decode.go and resolve.go
// touch, so the rest of the core never imports etree directly.
type Node interface {
	Tag() string
	Attr(name string) (string, bool)
	Children() []Node
}

// element adapts an *etree.Element to Node.
type element struct {
	el *etree.Element
}

// WrapElement adapts an etree element as a Node.
func WrapElement(el *etree.Element) Node {
	if el == nil {
		return nil
	}
	return element{el: el}
}

func (e element) Tag() string {
	return e.el.Tag
}

func (e element) Attr(name string) (string, bool) {
	a := e.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (e element) Children() []Node {
	kids := e.el.ChildElements()
	nodes := make([]Node, len(kids))
	for i, k := range kids {
		nodes[i] = element{el: k}
	}
	return nodes
}

// Document holds a parsed schema document: the document element (the
// container holding the managedObject entries, directly or under an
// intermediate element) and whether
// the raw XML tree began with an XML-declaration pseudo-node.
type Document struct {
	Root       Node
	HasXMLDecl bool
}

// ParseDocument parses data as an XML schema document. The document element
// is the root's first Element child, per spec.md §3: "a root whose first or
// second direct child is the document element".
func ParseDocument(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	hasDecl := false
	if len(doc.Child) > 0 {
		if _, ok := doc.Child[0].(*etree.ProcInst); ok {
			hasDecl = true
		}
	}

	return &Document{
		Root:       WrapElement(doc.Root()),
		HasXMLDecl: hasDecl,
	}, nil
}

// MetaVersion returns 1 when schemaB begins with an XML-declaration
// pseudo-node, else 0, per spec.md §3 and §9.
func MetaVersion(schemaB *Document) int {
	if schemaB.HasXMLDecl {
		return 1
	}
	return 0
}
