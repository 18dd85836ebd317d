package dashboard

// Table is a header plus rows of display strings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// CategoricalSection is the chart and selector for one categorical column.
type CategoricalSection struct {
	Column   string
	Key      string
	Selected CategoricalChart
	Options  []Option
	Chart    ChartView
}

// DashboardView is everything the dashboard page shows for one run. When
// Error is set the run was aborted and no other section is populated.
type DashboardView struct {
	UploadID           string
	FileName           string
	Error              string
	Warnings           []string
	Rows               int
	Columns            int
	Preview            Table
	Summary            Table
	Correlation        *ChartView
	CorrelationOptions []Option
	Pairs              []ChartView
	PairStyleOptions   []Option
	Categorical        []CategoricalSection
}

// HasSidebar reports whether any selector applies to this run.
func (v DashboardView) HasSidebar() bool {
	return v.Correlation != nil || len(v.Pairs) > 0 || len(v.Categorical) > 0
}
