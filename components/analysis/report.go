package analysis

const (
	// WarnNotEnoughNumeric replaces the correlation and pair plot sections.
	WarnNotEnoughNumeric = "Not enough numeric columns with variance for correlation analysis."
	// WarnEmptyCorrelation replaces the correlation section.
	WarnEmptyCorrelation = "Correlation matrix is empty."
	// WarnNoCategorical replaces the categorical section.
	WarnNoCategorical = "No categorical columns found."
)

// Report is everything derived from one dataset for one interaction.
type Report struct {
	Dataset       *Dataset           `json:"dataset"`
	Summary       Summary            `json:"summary"`
	Numeric       NumericFrame       `json:"numeric"`
	Correlation   *CorrelationMatrix `json:"correlation,omitempty"`
	Distributions []Distribution     `json:"distributions"`
	Warnings      []string           `json:"warnings,omitempty"`
}

// HasPairs reports whether the pairwise section should be rendered.
func (r Report) HasPairs() bool {
	return r.Numeric.Width() >= 2
}

// Analyze runs every derived step. Each step degrades to a warning on
// degenerate input instead of failing the whole report.
func Analyze(ds *Dataset) Report {
	report := Report{
		Dataset:       ds,
		Summary:       Describe(ds),
		Numeric:       NumericSubframe(ds),
		Distributions: Distributions(ds),
	}

	if report.Numeric.Width() < 2 {
		report.Warnings = append(report.Warnings, WarnNotEnoughNumeric)
	} else {
		corr := Correlate(report.Numeric)
		if corr.Empty() {
			report.Warnings = append(report.Warnings, WarnEmptyCorrelation)
		} else {
			report.Correlation = &corr
		}
	}

	if len(report.Distributions) == 0 {
		report.Warnings = append(report.Warnings, WarnNoCategorical)
	}
	return report
}
