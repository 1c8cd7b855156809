package config

// DomainConfig holds the business rules shared by the dataset and graph builders
type DomainConfig struct {
	// Overlap query
	MaxOverlapRows int

	// Graph constraints
	MaxNodesPerGraph     int
	AllowSelfConnections bool

	// Relationship graph colors
	SelectedNodeColor string
	DefaultNodeColor  string

	// Dataset cleaning
	MissingValue    string
	FenceMultiplier float64
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxOverlapRows: 10,

		MaxNodesPerGraph:     10000,
		AllowSelfConnections: false,

		SelectedNodeColor: "red",
		DefaultNodeColor:  "blue",

		MissingValue:    "Unknown",
		FenceMultiplier: 1.5,
	}
}
