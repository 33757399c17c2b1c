package lightscale

const (
	// StepBits selects segments for multi-segment tables: index = intensity >> StepBits.
	StepBits = 5

	// Step is the span of intensities covered by one segment of a gamma corrected table.
	Step = 1 << StepBits
)

const (
	tableBundleFormat = "lightscale-table-1"
)
