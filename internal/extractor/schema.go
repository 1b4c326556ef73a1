package extractor

// Prototype is a C function declaration found in a header.
type Prototype struct {
	Name       string  `json:"name"`        // Function name
	ReturnType string  `json:"return_type"` // Normalized return type, e.g. "int"
	Params     []Param `json:"params"`      // Parameters in declaration order
	Filepath   string  `json:"filepath"`    // Header the prototype was read from
	Line       int     `json:"line"`        // 1-based line of the declaration
}

// Param represents a single function parameter.
type Param struct {
	Name string `json:"name"` // Parameter name, "" for abstract declarators
	Type string `json:"type"` // Normalized type, e.g. "int*" or "MPI_Datatype"
}

// ParamNames returns the parameter names in order.
func (p *Prototype) ParamNames() []string {
	names := make([]string, 0, len(p.Params))
	for _, param := range p.Params {
		names = append(names, param.Name)
	}
	return names
}
