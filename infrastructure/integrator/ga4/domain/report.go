package domain

// Estruturas do endpoint properties/{id}:runReport da GA4 Data API.

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Dimension struct {
	Name string `json:"name"`
}

type Metric struct {
	Name string `json:"name"`
}

type RunReportRequest struct {
	DateRanges []DateRange `json:"dateRanges"`
	Dimensions []Dimension `json:"dimensions"`
	Metrics    []Metric    `json:"metrics"`
	Limit      string      `json:"limit,omitempty"`
	KeepEmpty  bool        `json:"keepEmptyRows,omitempty"`
}

type Header struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type Value struct {
	Value string `json:"value"`
}

type Row struct {
	DimensionValues []Value `json:"dimensionValues"`
	MetricValues    []Value `json:"metricValues"`
}

type RunReportResponse struct {
	DimensionHeaders []Header `json:"dimensionHeaders"`
	MetricHeaders    []Header `json:"metricHeaders"`
	Rows             []Row    `json:"rows"`
	RowCount         int      `json:"rowCount"`
}
