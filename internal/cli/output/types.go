package output

// ValidationOutput is the JSON shape of one validated pipeline file.
// IsDAG is nil for files that could not be validated.
type ValidationOutput struct {
	File     string     `json:"file"`
	NumNodes int        `json:"num_nodes"`
	NumEdges int        `json:"num_edges"`
	IsDAG    *bool      `json:"is_dag,omitempty"`
	Message  string     `json:"message,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
	Cycle    []string   `json:"cycle,omitempty"`
	Order    []string   `json:"order,omitempty"`
	Levels   [][]string `json:"levels,omitempty"`
	Roots    []string   `json:"roots,omitempty"`
	Leaves   []string   `json:"leaves,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// ValidationSummary is the JSON document printed by `leapflow validate -o json`.
type ValidationSummary struct {
	Files  []ValidationOutput `json:"files"`
	Valid  int                `json:"valid"`
	Cyclic int                `json:"cyclic"`
	Failed int                `json:"failed"`
}
