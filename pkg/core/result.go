package core

// ValidationResult is the verdict produced for one submitted graph.
type ValidationResult struct {
	NumNodes int    `json:"num_nodes"`
	NumEdges int    `json:"num_edges"`
	IsDAG    bool   `json:"is_dag"`
	Message  string `json:"message,omitempty"`
	// Warnings are informational findings that do not affect IsDAG.
	Warnings []string `json:"warnings,omitempty"`
}
