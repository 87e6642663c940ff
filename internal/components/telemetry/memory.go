package telemetry

import (
	"strings"
	"sync"
)

type ReportKind int

const (
	REPORT_BROKEN ReportKind = iota
	REPORT_WARNING
	REPORT_DEBUG
	REPORT_COUNT
)

type Report struct {
	Kind   ReportKind
	ID     string
	Params []any
	Count  int64
}

// MemoryAPI records every report it receives, it is meant to be used in tests to assert
// that a component reported (or did not report) a breakage.
type MemoryAPI struct {
	mutex   sync.Mutex
	reports []Report
}

func NewMemoryAPI() *MemoryAPI {
	return &MemoryAPI{}
}

func (m *MemoryAPI) push(r Report) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.reports = append(m.reports, r)
}

func (m *MemoryAPI) ReportBroken(id string, params ...any) {
	m.push(Report{Kind: REPORT_BROKEN, ID: id, Params: params})
}

func (m *MemoryAPI) ReportWarning(id string, params ...any) {
	m.push(Report{Kind: REPORT_WARNING, ID: id, Params: params})
}

func (m *MemoryAPI) ReportDebug(msg string, params ...any) {
	m.push(Report{Kind: REPORT_DEBUG, ID: msg, Params: params})
}

func (m *MemoryAPI) ReportCount(id string, count int64) {
	m.push(Report{Kind: REPORT_COUNT, ID: id, Count: count})
}

// Reports returns a copy of all the reports of a given kind.
func (m *MemoryAPI) Reports(kind ReportKind) []Report {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var out []Report
	for _, r := range m.reports {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// Has returns true if a report of the given kind has an id that ends with `suffix`.
// Suffix matching is used so that tests do not need to know the ScopedAPI namespace.
func (m *MemoryAPI) Has(kind ReportKind, suffix string) bool {
	for _, r := range m.Reports(kind) {
		if strings.HasSuffix(r.ID, suffix) {
			return true
		}
	}
	return false
}
