package services

import (
	"fmt"
	"math"
	"sort"

	"treport/internal/models"
	"treport/internal/providers"
	"treport/internal/structures"
)

const payrollUnknown = "unknown"

type ReportServiceInterface interface {
	RecordBoardActivity(board *models.BoardData, job structures.BoardConfig)
	Reports() map[string]*models.ReportRecord
	UnregisteredRecipients() []string
}

// ReportService accumulates per-period activity reports across board
// jobs within a single run. In custom-range mode every qualifying card
// lands in the one range-keyed report; otherwise cards are bucketed by
// the calendar month they were finished in.
type ReportService struct {
	recipients   RecipientServiceInterface
	timeRange    *models.TimeRange
	logger       providers.Logger
	data         map[string]*models.ReportRecord
	unregistered map[string]struct{}
}

func NewReportService(conf *structures.Config, recipients RecipientServiceInterface, logger providers.Logger) ReportServiceInterface {
	return &ReportService{
		recipients:   recipients,
		timeRange:    conf.TimeRange,
		logger:       logger,
		data:         make(map[string]*models.ReportRecord),
		unregistered: make(map[string]struct{}),
	}
}

// periodCard is a card that qualified for a reporting period, with its
// derived attributes resolved once.
type periodCard struct {
	card           *models.Card
	subparts       int
	members        map[string]struct{}
	payrollMembers map[string]struct{}
}

func (rs *ReportService) RecordBoardActivity(board *models.BoardData, job structures.BoardConfig) {
	rs.logger.Infof(providers.TypeReport, "Recording activity for board: %s", board.BoardID)

	include := cardFiltersFromRules(job.Include)
	exclude := cardFiltersFromRules(job.Exclude)

	grouped := rs.groupCardsByPeriod(board, job.DoneColumn)
	for periodKey, cards := range grouped {
		report := rs.reportByKey(periodKey)
		filtered := filterCards(cards, include, exclude)
		rs.updateSummaryStats(report, filtered)
		for _, pc := range filtered {
			for member := range pc.members {
				rs.assignCardToMember(report, member, pc, job.CardTag)
			}
		}
		rs.updateMemberCardPercentages(report)
	}

	rs.logger.Debugf(providers.TypeReport, "Recorded activity for board: %s", board.BoardID)
}

// groupCardsByPeriod buckets a board's cards by reporting period. Cards
// are keyed by the date they moved into the done column, so long-running
// cards are counted in the period they were finished in. Every member
// seen here is cross-referenced against the registry; unknown usernames
// go into the run-wide unregistered set.
func (rs *ReportService) groupCardsByPeriod(board *models.BoardData, doneColumn string) map[string][]*periodCard {
	grouped := make(map[string][]*periodCard)

	for _, card := range board.Cards {
		finish := card.MovementTo(doneColumn)
		if finish == nil {
			continue
		}

		var periodKey string
		if rs.timeRange != nil {
			if !rs.timeRange.Contains(finish.Date) {
				continue
			}
			periodKey = rs.timeRange.PeriodKey()
		} else {
			periodKey = models.MonthKey(finish.Date)
		}

		pc := &periodCard{
			card:           card,
			subparts:       card.SubpartCount(),
			members:        make(map[string]struct{}),
			payrollMembers: make(map[string]struct{}),
		}
		for _, memberID := range card.IDMembers {
			username, ok := board.MemberByID(memberID)
			if !ok {
				// Member left the board; the id is all we have.
				username = memberID
			}
			pc.members[username] = struct{}{}
			entry, registered := rs.recipients.Lookup(username)
			if !registered {
				rs.unregistered[username] = struct{}{}
				continue
			}
			if entry.OnPayroll() {
				pc.payrollMembers[username] = struct{}{}
			}
		}
		grouped[periodKey] = append(grouped[periodKey], pc)
	}
	return grouped
}

func filterCards(cards []*periodCard, include, exclude []CardFilter) []*periodCard {
	filtered := make([]*periodCard, 0, len(cards))
	for _, pc := range cards {
		if len(include) > 0 && !matchesAll(pc.card, include) {
			continue
		}
		if matchesAny(pc.card, exclude) {
			continue
		}
		filtered = append(filtered, pc)
	}
	return filtered
}

func (rs *ReportService) updateSummaryStats(report *models.ReportRecord, cards []*periodCard) {
	for _, pc := range cards {
		report.Info.UniquePeriodSubparts += pc.subparts
		report.Info.PayrollQualifyingSubparts += len(pc.payrollMembers) * pc.subparts
	}
}

func (rs *ReportService) assignCardToMember(report *models.ReportRecord, member string, pc *periodCard, cardTag string) {
	record := rs.memberRecord(report, member)
	record.CardCount += pc.subparts
	record.CardTitles = append(record.CardTitles, formatCardTitle(pc, cardTag))
	sort.Strings(record.CardTitles)
}

func (rs *ReportService) memberRecord(report *models.ReportRecord, member string) *models.MemberActivityRecord {
	if record, ok := report.Members[member]; ok {
		return record
	}
	record := &models.MemberActivityRecord{
		CardTitles:     []string{},
		CurrentPayroll: payrollUnknown,
	}
	if entry, ok := rs.recipients.Lookup(member); ok {
		record.CurrentPayroll = entry.CurrentPayroll
		record.Discord = entry.Discord
	}
	report.Members[member] = record
	return record
}

func (rs *ReportService) updateMemberCardPercentages(report *models.ReportRecord) {
	if report.Info.UniquePeriodSubparts == 0 {
		return
	}
	for _, record := range report.Members {
		record.CardPercent = roundPercent(100 * float64(record.CardCount) / float64(report.Info.UniquePeriodSubparts))
		if record.CurrentPayroll == "yes" && report.Info.PayrollQualifyingSubparts > 0 {
			record.PayrollCardPercent = roundPercent(100 * float64(record.CardCount) / float64(report.Info.PayrollQualifyingSubparts))
		}
	}
}

func formatCardTitle(pc *periodCard, cardTag string) string {
	title := pc.card.Name
	if pc.subparts > 1 {
		title += fmt.Sprintf(" (~%d subparts)", pc.subparts)
	}
	if cardTag != "" {
		title += " " + cardTag
	}
	return title
}

func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}

func (rs *ReportService) reportByKey(periodKey string) *models.ReportRecord {
	if report, ok := rs.data[periodKey]; ok {
		return report
	}
	report := models.NewReportRecord()
	rs.data[periodKey] = report
	return report
}

func (rs *ReportService) Reports() map[string]*models.ReportRecord {
	return rs.data
}

// UnregisteredRecipients returns the usernames observed in activity but
// missing from the registry, deduplicated across the whole run. The
// caller decides whether and how to surface the set.
func (rs *ReportService) UnregisteredRecipients() []string {
	names := make([]string, 0, len(rs.unregistered))
	for name := range rs.unregistered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
