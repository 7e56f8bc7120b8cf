package outline

// TreeStats summarizes the shape of a tree.
type TreeStats struct {
	TotalNodes   int `json:"totalNodes"`
	MaxDepth     int `json:"maxDepth"`
	LeafNodes    int `json:"leafNodes"`
	BranchNodes  int `json:"branchNodes"`
	UniqueTokens int `json:"uniqueTokens"`
}

// Stats computes TreeStats for t. The root counts as a node at depth 0.
func Stats(t *Tree) TreeStats {
	var s TreeStats
	t.Walk(func(id NodeID, depth int) bool {
		s.TotalNodes++
		s.MaxDepth = max(s.MaxDepth, depth)
		if len(t.Node(id).Children) == 0 {
			s.LeafNodes++
		}
		return true
	})
	s.BranchNodes = s.TotalNodes - s.LeafNodes
	s.UniqueTokens = LeafTokens(t).Len()
	return s
}
