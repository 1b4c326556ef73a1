package spec

// Stats tallies the largest group sizes seen during one load. Renderers use
// them to size table headers. A nil *Stats ignores observations.
type Stats struct {
	MaxArgumentCount  int `yaml:"max_argument_count"`
	MaxOperationCount int `yaml:"max_operation_count"`
	MaxAnalysisCount  int `yaml:"max_analysis_count"`
}

func (s *Stats) observeArguments(n int) {
	if s != nil && n > s.MaxArgumentCount {
		s.MaxArgumentCount = n
	}
}

func (s *Stats) observeOperations(n int) {
	if s != nil && n > s.MaxOperationCount {
		s.MaxOperationCount = n
	}
}

func (s *Stats) observeAnalyses(n int) {
	if s != nil && n > s.MaxAnalysisCount {
		s.MaxAnalysisCount = n
	}
}
