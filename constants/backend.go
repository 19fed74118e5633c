package constants

// Backend identifiers as they appear on the CLI and in run history.
const (
	BackendTabula  = "tabula"
	BackendCamelot = "camelot"
	BackendAuto    = "auto"
)

// Camelot detection flavors.
const (
	FlavorStream  = "stream"
	FlavorLattice = "lattice"
)

// Methods holds the allowed values for the --method flag.
var Methods = []string{BackendTabula, BackendCamelot, BackendAuto}

// Flavors holds the allowed values for the --flavor flag.
var Flavors = []string{FlavorStream, FlavorLattice}
