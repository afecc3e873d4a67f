package models

import (
	"bytes"
	"sort"
	"time"

	json "github.com/goccy/go-json"
)

// TimeRange is an inclusive [Start, End] date range for custom-range
// reports. Both bounds are dates, compared at day granularity.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// PeriodKey returns the report key for the whole range,
// e.g. "2024-01-01_to_2024-02-29".
func (tr *TimeRange) PeriodKey() string {
	return tr.Start.Format(time.DateOnly) + "_to_" + tr.End.Format(time.DateOnly)
}

// Contains reports whether t falls inside the range. Bounds are
// inclusive: a timestamp on the start or end date is in range.
func (tr *TimeRange) Contains(t time.Time) bool {
	d := truncateToDate(t)
	return !d.Before(truncateToDate(tr.Start)) && !d.After(truncateToDate(tr.End))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the calendar-month report key for t, e.g. "2024-03".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// MemberActivityRecord is one member's row in a report period.
type MemberActivityRecord struct {
	CardCount          int      `json:"card_count"`
	CardTitles         []string `json:"card_titles"`
	CurrentPayroll     string   `json:"current_payroll"`
	Discord            string   `json:"discord"`
	CardPercent        float64  `json:"card_percent"`
	PayrollCardPercent float64  `json:"payroll_card_percent"`
}

// ReportInfo holds the period-wide totals used for percentages.
type ReportInfo struct {
	UniquePeriodSubparts      int `json:"unique_period_subparts"`
	PayrollQualifyingSubparts int `json:"payroll_qualifying_subparts"`
}

// ReportRecord is one reporting period: the summary block plus the
// per-member activity rows.
type ReportRecord struct {
	Info    ReportInfo
	Members map[string]*MemberActivityRecord
}

func NewReportRecord() *ReportRecord {
	return &ReportRecord{
		Members: make(map[string]*MemberActivityRecord),
	}
}

// SortedMembers returns usernames ordered by card count descending,
// username ascending as tiebreak.
func (r *ReportRecord) SortedMembers() []string {
	names := make([]string, 0, len(r.Members))
	for name := range r.Members {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := r.Members[names[i]], r.Members[names[j]]
		if a.CardCount != b.CardCount {
			return a.CardCount > b.CardCount
		}
		return names[i] < names[j]
	})
	return names
}

// MarshalJSON emits the "_info" block first and then the member rows in
// SortedMembers order, so report files read top-down from most to least
// active member.
func (r *ReportRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"_info":`)
	info, err := json.Marshal(r.Info)
	if err != nil {
		return nil, err
	}
	buf.Write(info)
	for _, name := range r.SortedMembers() {
		buf.WriteByte(',')
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		row, err := json.Marshal(r.Members[name])
		if err != nil {
			return nil, err
		}
		buf.Write(row)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
