package plotspec

// Kind identifies the geometry an external renderer draws for a spec.
type Kind string

const (
	KindDensity      Kind = "density"
	KindPairedDot    Kind = "paired_dot"
	KindScatter      Kind = "scatter"
	KindViolin       Kind = "violin"
	KindDotHistogram Kind = "dot_histogram"
)

// Axis describes one axis of a chart.
type Axis struct {
	Label string   `json:"label"`
	Unit  string   `json:"unit,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Sample is one datum: the measured value plus the categorical labels a
// renderer may facet, color, or pair by.
type Sample struct {
	Value     float64 `json:"value"`
	Method    string  `json:"method,omitempty"`
	Replicate string  `json:"replicate,omitempty"`
	Year      int     `json:"year,omitempty"`
	Pair      string  `json:"pair,omitempty"`
}

// Series groups the samples drawn with one visual role. Role
// distinguishes raw points from overlaid aggregates within the same
// chart.
type Series struct {
	Name    string   `json:"name"`
	Role    string   `json:"role,omitempty"`
	Samples []Sample `json:"samples"`
}

// Annotation marks a derived statistic on a chart.
type Annotation struct {
	Kind  string  `json:"kind"`
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value,omitempty"`
	Lower float64 `json:"lower,omitempty"`
	Upper float64 `json:"upper,omitempty"`
}

// Spec is one render-ready chart specification with inline data. The
// renderer needs nothing beyond this document to draw the chart.
type Spec struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Kind        Kind         `json:"kind"`
	XAxis       Axis         `json:"x_axis"`
	YAxis       Axis         `json:"y_axis"`
	FacetBy     string       `json:"facet_by,omitempty"`
	ColorBy     string       `json:"color_by,omitempty"`
	Series      []Series     `json:"series"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

const percentAxisLabel = "Cells in S phase"

func percentAxis() Axis {
	min, max := 0.0, 100.0
	return Axis{Label: percentAxisLabel, Unit: "%", Min: &min, Max: &max}
}
