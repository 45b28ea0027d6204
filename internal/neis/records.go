package neis

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/dateutil"
)

// Dish is one menu item with its allergen code list.
type Dish struct {
	Name         string
	AllergyCodes []int
}

// Meal is one serving slot (breakfast, lunch, dinner) on one day.
type Meal struct {
	Date     time.Time
	SlotCode string
	SlotName string
	Dishes   []Dish
	Calorie  string
	Origin   string
}

// Lesson is one period of a class timetable.
type Lesson struct {
	Period    int
	Subject   string
	Classroom string
}

// CalendarEvent is one academic calendar entry.
type CalendarEvent struct {
	Date        time.Time
	Title       string
	Scope       string
	Description string
}

// Meals fetches meal records for an inclusive date range.
func (c *Client) Meals(ctx context.Context, from, to time.Time) ([]Meal, error) {
	rows, err := c.fetch(ctx, EndpointMeal, map[string]string{
		"MLSV_FROM_YMD": dateutil.FormatAPIKey(from),
		"MLSV_TO_YMD":   dateutil.FormatAPIKey(to),
	})
	if err != nil {
		return nil, err
	}

	meals := make([]Meal, 0, len(rows))
	for _, row := range rows {
		date, ok := dateutil.ParseFlexible(row["MLSV_YMD"])
		if !ok {
			continue
		}
		meals = append(meals, Meal{
			Date:     date,
			SlotCode: row["MMEAL_SC_CODE"],
			SlotName: row["MMEAL_SC_NM"],
			Dishes:   parseDishes(row["DDISH_NM"]),
			Calorie:  row["CAL_INFO"],
			Origin:   row["ORPLC_INFO"],
		})
	}
	return meals, nil
}

// Timetable fetches the lessons for one class on one day, ordered by
// ascending period.
func (c *Client) Timetable(ctx context.Context, date time.Time, grade, class string) ([]Lesson, error) {
	rows, err := c.fetch(ctx, c.timetableEndpoint, map[string]string{
		"AY":         strconv.Itoa(dateutil.AcademicYear(date)),
		"SEM":        strconv.Itoa(dateutil.Semester(date)),
		"ALL_TI_YMD": dateutil.FormatAPIKey(date),
		"GRADE":      grade,
		"CLASS_NM":   class,
	})
	if err != nil {
		return nil, err
	}

	lessons := make([]Lesson, 0, len(rows))
	for _, row := range rows {
		period, err := strconv.Atoi(strings.TrimSpace(row["PERIO"]))
		if err != nil {
			continue
		}
		lessons = append(lessons, Lesson{
			Period:    period,
			Subject:   strings.TrimSpace(row["ITRT_CNTNT"]),
			Classroom: strings.TrimSpace(row["CLRM_NM"]),
		})
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Period < lessons[j].Period })
	return lessons, nil
}

// Schedule fetches academic calendar events for an inclusive date
// range, ordered by ascending date.
func (c *Client) Schedule(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	rows, err := c.fetch(ctx, EndpointSchedule, map[string]string{
		"AY":          strconv.Itoa(dateutil.AcademicYear(from)),
		"SEM":         strconv.Itoa(dateutil.Semester(from)),
		"AA_FROM_YMD": dateutil.FormatAPIKey(from),
		"AA_TO_YMD":   dateutil.FormatAPIKey(to),
		"pSize":       "200",
	})
	if err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(rows))
	for _, row := range rows {
		date, ok := dateutil.ParseFlexible(row["AA_YMD"])
		if !ok {
			continue
		}
		title := strings.TrimSpace(row["EVENT_NM"])
		if title == "" {
			continue
		}
		description := strings.TrimSpace(row["CONTENT"])
		if description == "" {
			description = strings.TrimSpace(row["EVENT_CNTNT"])
		}
		events = append(events, CalendarEvent{
			Date:        date,
			Title:       title,
			Scope:       strings.TrimSpace(row["SBTR_DD_SC_NM"]),
			Description: description,
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

var (
	breakTagPattern   = regexp.MustCompile(`(?i)<br\s*/?>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	dishPattern       = regexp.MustCompile(`^(.*?)\s*\(([0-9.]+)\)\.?$`)
)

// parseDishes splits a DDISH_NM menu string into dishes. Lines look
// like "현미밥" or "돈까스 (1.2.5.6.)" where the trailing numbers are
// allergen codes.
func parseDishes(raw string) []Dish {
	lines := breakTagPattern.Split(raw, -1)
	dishes := make([]Dish, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(whitespacePattern.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		dishes = append(dishes, parseDish(line))
	}
	return dishes
}

func parseDish(line string) Dish {
	m := dishPattern.FindStringSubmatch(line)
	if m == nil {
		return Dish{Name: line}
	}

	codes := make([]int, 0, 4)
	for _, part := range strings.Split(strings.TrimSuffix(m[2], "."), ".") {
		code, err := strconv.Atoi(part)
		if err != nil {
			return Dish{Name: line}
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return Dish{Name: line}
	}
	return Dish{Name: strings.TrimSpace(m[1]), AllergyCodes: codes}
}
