package walker

// directive is one step of the walker/consumer negotiation: either a
// genuine emission (consumed non-nil, reset and ignore both false) or an
// instruction telling walkRec what to do with the current node.
//
// The four combinations mirror the protocol exactly:
//
//	reset=false ignore=false  emission: yield consumed/original upstream
//	reset=true  ignore=false  reset the node, re-enter Step 1, negotiate again
//	reset=true  ignore=true   reset the node, re-enter Step 1, skip Step 2
//	reset=false ignore=true   move on to the next sibling
type directive struct {
	consumed Node
	original []byte
	reset    bool
	ignore   bool
}
