// Package dataset serves the school-specific data that NEIS does not
// carry: performance assessments, exam dates for countdowns, D-day
// events, and hand-maintained calendar overrides. All of it lives in
// JSON files under one data directory and is loaded once at startup.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/dateutil"
	domerrors "github.com/yunseo-dev/neis-kakaobot-go/internal/errors"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/logger"
)

// Data file names under the data directory.
const (
	assessmentsFile  = "performanceAssessments.json"
	examsFile        = "examSchedules.json"
	ddayFile         = "dday.json"
	customEventsFile = "customEvents.json"
)

// DateKind describes how an assessment date was written in the source
// file.
type DateKind string

const (
	DateSingle DateKind = "single"
	DateRange  DateKind = "range"
	DateBefore DateKind = "before"
)

// Assessment is one performance assessment entry.
type Assessment struct {
	Title       string
	Subject     string
	Description string
	Kind        DateKind
	Start       time.Time
	End         time.Time
}

// DisplayDate renders the date the way it was meant in the source:
// a plain date, an inclusive range, or an on-or-before deadline.
func (a Assessment) DisplayDate() string {
	switch a.Kind {
	case DateRange:
		return dateutil.FormatShort(a.Start) + " ~ " + dateutil.FormatShort(a.End) + " 사이"
	case DateBefore:
		return dateutil.FormatShort(a.Start) + " 이전"
	default:
		return dateutil.FormatShort(a.Start)
	}
}

// Countdown is a dated event with the number of days remaining.
type Countdown struct {
	Title    string
	Date     time.Time
	DaysLeft int
}

// Label renders the countdown in D-day notation.
func (c Countdown) Label() string {
	if c.DaysLeft == 0 {
		return "D-DAY"
	}
	return fmt.Sprintf("D-%d", c.DaysLeft)
}

// CustomExam is a hand-maintained exam entry with an inclusive range.
type CustomExam struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// CustomAssessment is a hand-maintained single-day assessment entry.
type CustomAssessment struct {
	Title       string
	Description string
	Date        time.Time
}

type datedEvent struct {
	title string
	date  time.Time
}

// Store holds all static data loaded from the data directory. It is
// immutable after Load, so reads need no locking.
type Store struct {
	assessments []Assessment
	exams       []datedEvent
	ddays       []datedEvent
	customAsmts []CustomAssessment
	customExams []CustomExam
}

type assessmentRecord struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type datedRecord struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type customEventsRecord struct {
	PerformanceAssessments []struct {
		Title       string `json:"title"`
		Date        string `json:"date"`
		Description string `json:"description"`
	} `json:"performanceAssessments"`
	Exams []struct {
		Title       string `json:"title"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
		Description string `json:"description"`
	} `json:"exams"`
}

// Load reads every data file under dir. A missing file yields an empty
// dataset; a file that exists but is structurally broken is a startup
// error. Individual records with unparseable dates are dropped.
func Load(dir string, log *logger.Logger) (*Store, error) {
	store := &Store{}

	var assessments []assessmentRecord
	if err := loadFile(dir, assessmentsFile, &assessments, log); err != nil {
		return nil, err
	}
	for _, rec := range assessments {
		a, ok := normalizeAssessment(rec)
		if !ok {
			if log != nil {
				log.WithField("title", rec.Title).Warnf("dropping assessment with bad date %q", rec.Date)
			}
			continue
		}
		store.assessments = append(store.assessments, a)
	}

	var exams []datedRecord
	if err := loadFile(dir, examsFile, &exams, log); err != nil {
		return nil, err
	}
	store.exams = normalizeDated(exams, log)

	var ddays []datedRecord
	if err := loadFile(dir, ddayFile, &ddays, log); err != nil {
		return nil, err
	}
	store.ddays = normalizeDated(ddays, log)

	var custom customEventsRecord
	if err := loadFile(dir, customEventsFile, &custom, log); err != nil {
		return nil, err
	}
	for _, rec := range custom.PerformanceAssessments {
		date, ok := dateutil.ParseFlexible(rec.Date)
		if !ok {
			continue
		}
		store.customAsmts = append(store.customAsmts, CustomAssessment{
			Title:       strings.TrimSpace(rec.Title),
			Description: strings.TrimSpace(rec.Description),
			Date:        date,
		})
	}
	for _, rec := range custom.Exams {
		start, ok := dateutil.ParseFlexible(rec.StartDate)
		if !ok {
			continue
		}
		end := start
		if rec.EndDate != "" {
			if parsed, ok := dateutil.ParseFlexible(rec.EndDate); ok {
				end = parsed
			}
		}
		store.customExams = append(store.customExams, CustomExam{
			Title:       strings.TrimSpace(rec.Title),
			Description: strings.TrimSpace(rec.Description),
			Start:       start,
			End:         end,
		})
	}

	return store, nil
}

func loadFile(dir, name string, target any, log *logger.Logger) error {
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if log != nil {
				log.WithField("file", name).Debugf("data file missing, starting empty")
			}
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %s: %v", domerrors.ErrMalformedData, name, err)
	}
	return nil
}

// normalizeAssessment parses the three accepted date forms: a single
// date, a "start ~ end" range, and a "date 이전" deadline.
func normalizeAssessment(rec assessmentRecord) (Assessment, bool) {
	value := strings.TrimSpace(rec.Date)
	if value == "" {
		return Assessment{}, false
	}

	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = strings.TrimSpace(rec.Subject)
	}
	if title == "" {
		title = "수행평가"
	}

	base := Assessment{
		Title:       title,
		Subject:     strings.TrimSpace(rec.Subject),
		Description: strings.TrimSpace(rec.Description),
	}

	if strings.Contains(value, "~") {
		parts := strings.SplitN(value, "~", 2)
		start, okStart := dateutil.ParseFlexible(strings.TrimSpace(parts[0]))
		end, okEnd := dateutil.ParseFlexible(strings.TrimSpace(parts[1]))
		if !okStart || !okEnd {
			return Assessment{}, false
		}
		base.Kind = DateRange
		base.Start, base.End = start, end
		return base, true
	}

	kind := DateSingle
	if strings.Contains(value, "이전") {
		kind = DateBefore
		value = strings.TrimSpace(strings.ReplaceAll(value, "이전", ""))
	}
	date, ok := dateutil.ParseFlexible(value)
	if !ok {
		return Assessment{}, false
	}
	base.Kind = kind
	base.Start, base.End = date, date
	return base, true
}

func normalizeDated(records []datedRecord, log *logger.Logger) []datedEvent {
	events := make([]datedEvent, 0, len(records))
	for _, rec := range records {
		date, ok := dateutil.ParseFlexible(rec.Date)
		if !ok {
			if log != nil {
				log.WithField("title", rec.Title).Warnf("dropping entry with bad date %q", rec.Date)
			}
			continue
		}
		events = append(events, datedEvent{title: strings.TrimSpace(rec.Title), date: date})
	}
	return events
}

// Counts reports how many records each dataset holds. Used by the
// readiness probe.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"assessments":        len(s.assessments),
		"exams":              len(s.exams),
		"ddays":              len(s.ddays),
		"custom_assessments": len(s.customAsmts),
		"custom_exams":       len(s.customExams),
	}
}

// UpcomingAssessments returns assessments that have not passed yet,
// ordered by start date. A range counts as upcoming until its end date.
func (s *Store) UpcomingAssessments(today time.Time) []Assessment {
	today = dateutil.Midnight(today)
	upcoming := make([]Assessment, 0, len(s.assessments))
	for _, a := range s.assessments {
		if a.End.Before(today) {
			continue
		}
		upcoming = append(upcoming, a)
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Start.Before(upcoming[j].Start) })
	return upcoming
}

// NearestExam returns the soonest exam on or after today.
func (s *Store) NearestExam(today time.Time) (Countdown, bool) {
	return nearest(s.exams, today)
}

// NearestDday returns the soonest D-day event on or after today.
func (s *Store) NearestDday(today time.Time) (Countdown, bool) {
	return nearest(s.ddays, today)
}

func nearest(events []datedEvent, today time.Time) (Countdown, bool) {
	today = dateutil.Midnight(today)
	best := Countdown{DaysLeft: -1}
	found := false
	for _, ev := range events {
		days := dateutil.DaysBetween(today, ev.date)
		if days < 0 {
			continue
		}
		if !found || days < best.DaysLeft {
			best = Countdown{Title: ev.title, Date: ev.date, DaysLeft: days}
			found = true
		}
	}
	return best, found
}

// CustomExamsBetween returns hand-maintained exams whose range touches
// the given inclusive range, ordered by start date.
func (s *Store) CustomExamsBetween(start, end time.Time) []CustomExam {
	start, end = dateutil.Midnight(start), dateutil.Midnight(end)
	matched := make([]CustomExam, 0, len(s.customExams))
	for _, ex := range s.customExams {
		if ex.End.Before(start) || ex.Start.After(end) {
			continue
		}
		matched = append(matched, ex)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Start.Before(matched[j].Start) })
	return matched
}

// CustomAssessmentsBetween returns hand-maintained assessments falling
// inside the given inclusive range, ordered by date.
func (s *Store) CustomAssessmentsBetween(start, end time.Time) []CustomAssessment {
	start, end = dateutil.Midnight(start), dateutil.Midnight(end)
	matched := make([]CustomAssessment, 0, len(s.customAsmts))
	for _, a := range s.customAsmts {
		if a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		matched = append(matched, a)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	return matched
}
