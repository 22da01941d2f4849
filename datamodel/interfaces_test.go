package datamodel

import "github.com/5l1v3r1/fuddly/walker"

var (
	_ walker.Node              = (*LeafNode)(nil)
	_ walker.Node              = (*NonTermNode)(nil)
	_ walker.ValueType         = (*IntValue)(nil)
	_ walker.ValueType         = (*StringValue)(nil)
	_ walker.SemanticsCriteria = (*Semantics)(nil)
)
