package plotspec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sphasecli/pkg/contracts/domain"
)

// Builder composes the chart specifications of one run. Builder values
// are immutable: every With method returns a new Builder with the input
// attached, leaving the receiver untouched, so partially configured
// builders can be shared and extended independently.
type Builder struct {
	observations []domain.DatedObservation
	summaries    []domain.ReplicateSummary
	estimate     *domain.PopulationEstimate
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// WithObservations attaches the cleaned observations, both methods
// included.
func (b Builder) WithObservations(observations []domain.DatedObservation) Builder {
	b.observations = observations
	return b
}

// WithSummaries attaches the replicate summary table.
func (b Builder) WithSummaries(summaries []domain.ReplicateSummary) Builder {
	b.summaries = summaries
	return b
}

// WithEstimate attaches the population estimate used to annotate the
// replicate-means chart.
func (b Builder) WithEstimate(estimate domain.PopulationEstimate) Builder {
	b.estimate = &estimate
	return b
}

// Build composes every spec whose inputs are attached, in a fixed
// order: method density, paired dots by year, superplot, per-replicate
// violins, replicate-mean dot histogram.
func (b Builder) Build() []Spec {
	specs := make([]Spec, 0, 5)

	if len(b.observations) > 0 {
		specs = append(specs,
			b.methodDensitySpec(),
			b.pairedByYearSpec(),
		)
		if len(b.summaries) > 0 {
			specs = append(specs, b.superplotSpec())
		}
		specs = append(specs, b.replicateViolinSpec())
	}
	if len(b.summaries) > 0 {
		specs = append(specs, b.replicateMeansSpec())
	}

	return specs
}

// methodDensitySpec shows the value distribution of each counting
// method side by side.
func (b Builder) methodDensitySpec() Spec {
	samples := make([]Sample, 0, len(b.observations))
	for _, obs := range b.observations {
		samples = append(samples, Sample{
			Value:  obs.Value,
			Method: string(obs.Method),
			Year:   obs.Year,
		})
	}

	return Spec{
		ID:      "method_density",
		Title:   "Distribution of S-phase percentages by counting method",
		Kind:    KindDensity,
		XAxis:   percentAxis(),
		YAxis:   Axis{Label: "Density"},
		FacetBy: "method",
		Series:  []Series{{Name: "observations", Samples: samples}},
	}
}

// pairedByYearSpec pairs the manual and automated count of each
// submission. Only submissions where both values survived cleaning
// contribute a pair.
func (b Builder) pairedByYearSpec() Spec {
	type pairKey struct {
		timestamp string
		group     string
	}
	pairs := make(map[pairKey][]domain.DatedObservation)
	order := make([]pairKey, 0)
	for _, obs := range b.observations {
		key := pairKey{timestamp: obs.Timestamp, group: obs.Group}
		if _, seen := pairs[key]; !seen {
			order = append(order, key)
		}
		pairs[key] = append(pairs[key], obs)
	}

	samples := make([]Sample, 0, len(b.observations))
	for i, key := range order {
		members := pairs[key]
		if len(members) < 2 {
			continue
		}
		pairID := fmt.Sprintf("submission_%d", i+1)
		for _, obs := range members {
			samples = append(samples, Sample{
				Value:     obs.Value,
				Method:    string(obs.Method),
				Replicate: obs.ReplicateKey(),
				Year:      obs.Year,
				Pair:      pairID,
			})
		}
	}

	return Spec{
		ID:      "paired_by_year",
		Title:   "Manual versus automated count per submission",
		Kind:    KindPairedDot,
		XAxis:   Axis{Label: "Counting method"},
		YAxis:   percentAxis(),
		FacetBy: "year",
		Series:  []Series{{Name: "submissions", Samples: samples}},
	}
}

// superplotSpec overlays the replicate means on the technical-replicate
// scatter, split by method and year.
func (b Builder) superplotSpec() Spec {
	points := make([]Sample, 0, len(b.observations))
	for _, obs := range b.observations {
		points = append(points, Sample{
			Value:     obs.Value,
			Method:    string(obs.Method),
			Replicate: obs.ReplicateKey(),
			Year:      obs.Year,
		})
	}

	means := make([]Sample, 0, len(b.summaries))
	for _, s := range b.summaries {
		means = append(means, Sample{
			Value:     s.Percentage,
			Method:    string(s.Method),
			Replicate: s.Replicate,
			Year:      yearOfReplicate(s.Replicate),
		})
	}

	return Spec{
		ID:      "superplot",
		Title:   "Technical replicates with replicate means by method and year",
		Kind:    KindScatter,
		XAxis:   Axis{Label: "Counting method"},
		YAxis:   percentAxis(),
		FacetBy: "year",
		ColorBy: "replicate",
		Series: []Series{
			{Name: "technical replicates", Role: "points", Samples: points},
			{Name: "replicate means", Role: "means", Samples: means},
		},
	}
}

// replicateViolinSpec shows the manual value distribution within each
// replicate.
func (b Builder) replicateViolinSpec() Spec {
	samples := make([]Sample, 0, len(b.observations))
	for _, obs := range b.observations {
		if obs.Method != domain.MethodManual {
			continue
		}
		samples = append(samples, Sample{
			Value:     obs.Value,
			Method:    string(obs.Method),
			Replicate: obs.ReplicateKey(),
			Year:      obs.Year,
		})
	}

	return Spec{
		ID:     "replicate_violin",
		Title:  "Manual count distribution per replicate",
		Kind:   KindViolin,
		XAxis:  Axis{Label: "Replicate"},
		YAxis:  percentAxis(),
		Series: []Series{{Name: "manual observations", Samples: samples}},
	}
}

// replicateMeansSpec plots one dot per replicate mean, colored by year,
// annotated with the population estimate when it is defined.
func (b Builder) replicateMeansSpec() Spec {
	samples := make([]Sample, 0, len(b.summaries))
	for _, s := range b.summaries {
		samples = append(samples, Sample{
			Value:     s.Percentage,
			Method:    string(s.Method),
			Replicate: s.Replicate,
			Year:      yearOfReplicate(s.Replicate),
		})
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Value < samples[j].Value })

	spec := Spec{
		ID:      "replicate_means",
		Title:   "Replicate means with population estimate",
		Kind:    KindDotHistogram,
		XAxis:   percentAxis(),
		YAxis:   Axis{Label: "Replicates"},
		ColorBy: "year",
		Series:  []Series{{Name: "replicate means", Samples: samples}},
	}

	if b.estimate != nil && b.estimate.Defined() {
		spec.Annotations = []Annotation{
			{Kind: "vline", Label: "population mean", Value: b.estimate.Average},
			{Kind: "band", Label: "95% CI", Lower: b.estimate.CILower, Upper: b.estimate.CIUpper},
		}
	}

	return spec
}

// yearOfReplicate recovers the year prefix of a replicate key. Keys
// without a numeric prefix yield zero.
func yearOfReplicate(replicate string) int {
	parts := strings.SplitN(replicate, " ", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	return year
}
