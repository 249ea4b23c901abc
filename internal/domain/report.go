package domain

import (
	"strconv"
	"strings"
	"time"
)

type Source string

const (
	SourceGA4  Source = "ga4"
	SourceAds  Source = "ads"
	SourceBoth Source = "both"
)

// MergeOrder é a ordem fixa de leitura das fontes no relatório mesclado.
var MergeOrder = []Source{SourceGA4, SourceAds}

func (s Source) IsValid() bool {
	return s == SourceGA4 || s == SourceAds || s == SourceBoth
}

// Expand devolve as fontes concretas consultadas.
func (s Source) Expand() []Source {
	if s == SourceBoth {
		return MergeOrder
	}
	return []Source{s}
}

const DateLayout = "2006-01-02"

type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: civilDate(start), End: civilDate(end)}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days conta os dias do intervalo, incluindo as duas pontas.
func (r DateRange) Days() int {
	return int(civilDate(r.End).Sub(civilDate(r.Start))/(24*time.Hour)) + 1
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

func (r DateRange) StartString() string { return r.Start.Format(DateLayout) }
func (r DateRange) EndString() string   { return r.End.Format(DateLayout) }

type ReportRequest struct {
	StoreID    string    `json:"store_id"`
	Source     Source    `json:"source"`
	DateRange  DateRange `json:"date_range"`
	Dimensions []string  `json:"dimensions"`
	Metrics    []string  `json:"metrics"`
	CustomerID string    `json:"customer_id,omitempty"`
	Limit      int       `json:"limit,omitempty"`
}

// BackendQuery é a consulta já resolvida para uma fonte.
type BackendQuery struct {
	AccessToken string
	Account     *AccountContext
	DateRange   DateRange
	Dimensions  []string
	Metrics     []string
	Limit       int
}

// MetricRow é a unidade normalizada retornada por uma fonte.
type MetricRow struct {
	Source     Source             `json:"source"`
	Dimensions map[string]string  `json:"dimensions"`
	Metrics    map[string]float64 `json:"metrics"`
}

const keySeparator = "\x1f"

// Key monta a chave de junção a partir dos valores das dimensões, na ordem de keys.
func (r MetricRow) Key(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = r.Dimensions[k]
	}
	return strings.Join(parts, keySeparator)
}

// Cell é o valor de uma métrica numa linha mesclada. Absent significa que a fonte não tem
// dado para a chave, o que é diferente de zero.
type Cell struct {
	Value  float64
	Absent bool
}

func AbsentCell() Cell { return Cell{Absent: true} }

func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Absent {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, c.Value, 'f', -1, 64), nil
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*c = AbsentCell()
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*c = Cell{Value: v}
	return nil
}

type MergedRow struct {
	Dimensions map[string]string          `json:"dimensions"`
	Values     map[Source]map[string]Cell `json:"values"`
}

// Cell devolve a célula da fonte; métricas não pedidas àquela fonte são ausentes.
func (r *MergedRow) Cell(source Source, metric string) Cell {
	cells, ok := r.Values[source]
	if !ok {
		return AbsentCell()
	}
	cell, ok := cells[metric]
	if !ok {
		return AbsentCell()
	}
	return cell
}

// Value devolve o primeiro valor presente da métrica seguindo MergeOrder.
func (r *MergedRow) Value(metric string) (float64, bool) {
	for _, source := range MergeOrder {
		if cell := r.Cell(source, metric); !cell.Absent {
			return cell.Value, true
		}
	}
	return 0, false
}

// MergeSpec descreve a junção: chaves, colunas pedidas por fonte e métrica de ordenação.
type MergeSpec struct {
	JoinKeys []string
	Columns  map[Source][]string
	OrderBy  string
}

type SourceState string

const (
	SourceStateOK      SourceState = "ok"
	SourceStateFailed  SourceState = "failed"
	SourceStateSkipped SourceState = "skipped"
)

type SourceStatus struct {
	Source   Source       `json:"source"`
	State    SourceState  `json:"state"`
	Rows     int          `json:"rows"`
	Attempts int          `json:"attempts"`
	Error    *ReportError `json:"error,omitempty"`
}

// SourceResult é o que o despachante devolve por fonte; Err já está classificado.
type SourceResult struct {
	Source   Source
	Rows     []MetricRow
	Attempts int
	Err      *ReportError
}

type Report struct {
	StoreID     string                   `json:"store_id"`
	Request     *ReportRequest           `json:"request"`
	Rows        []*MergedRow             `json:"rows"`
	Sources     map[Source]*SourceStatus `json:"sources"`
	Partial     bool                     `json:"partial"`
	Failures    []*ReportError           `json:"failures,omitempty"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// NoData indica um resultado válido e vazio, sem nenhuma fonte com falha.
func (r *Report) NoData() bool {
	if len(r.Rows) > 0 {
		return false
	}
	for _, status := range r.Sources {
		if status.State == SourceStateFailed {
			return false
		}
	}
	return true
}

func (r *Report) Succeeded(source Source) bool {
	status, ok := r.Sources[source]
	return ok && status.State == SourceStateOK
}
