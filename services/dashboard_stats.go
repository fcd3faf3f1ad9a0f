package services

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/academia-api/model"
)

// PassingGrade is the lowest average that does not raise an alert
const PassingGrade = 60.0

// DefaultTrendWeeks is the number of ISO weeks in the weekly trend
const DefaultTrendWeeks = 8

// DashboardStats aggregates the dashboard records
type DashboardStats struct {
	TotalStudents        int64         `json:"total_students"`
	ActiveStudents       int64         `json:"active_students"`
	TotalActivities      int64         `json:"total_activities"`
	PendingActivities    int64         `json:"pending_activities"`
	InProgressActivities int64         `json:"in_progress_activities"`
	CompletedActivities  int64         `json:"completed_activities"`
	OverdueActivities    int64         `json:"overdue_activities"`
	UnreadMessages       int64         `json:"unread_messages"`
	AverageGrade         float64       `json:"average_grade"`
	AverageAttendance    float64       `json:"average_attendance"`
	WeeklyTrend          []TrendPoint  `json:"weekly_trend"`
	GradeDistribution    []GradeBucket `json:"grade_distribution"`
	Alerts               []Alert       `json:"alerts"`
	GeneratedAt          time.Time     `json:"generated_at"`
}

// TrendPoint counts activities created and completed in one ISO week
type TrendPoint struct {
	Week      string    `json:"week"` // e.g. 2026-W07
	WeekStart time.Time `json:"week_start"`
	Created   int64     `json:"created"`
	Completed int64     `json:"completed"`
}

// GradeBucket counts student averages within [Min, Max]
type GradeBucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int64   `json:"count"`
}

// Alert kinds
const (
	AlertOverdueActivity = "overdue_activity"
	AlertLowAverage      = "low_average"
	AlertUrgentMessage   = "urgent_message"
)

// Alert is something on the dashboard that needs attention
type Alert struct {
	Kind        string             `json:"kind"`
	Priority    model.PriorityEnum `json:"priority"`
	Message     string             `json:"message"`
	ReferenceID uint               `json:"reference_id"`
}

// gradeBuckets are the distribution ranges; the last one is closed at 100
var gradeBuckets = []GradeBucket{
	{Label: "0-59", Min: 0, Max: 59.99},
	{Label: "60-69", Min: 60, Max: 69.99},
	{Label: "70-79", Min: 70, Max: 79.99},
	{Label: "80-89", Min: 80, Max: 89.99},
	{Label: "90-100", Min: 90, Max: 100},
}

// BucketGrades distributes averages over the fixed ranges. Values outside 0..100
// are clamped into the first or last bucket.
func BucketGrades(grades []float64) []GradeBucket {
	out := make([]GradeBucket, len(gradeBuckets))
	copy(out, gradeBuckets)
	for _, g := range grades {
		switch {
		case g < 60:
			out[0].Count++
		case g < 70:
			out[1].Count++
		case g < 80:
			out[2].Count++
		case g < 90:
			out[3].Count++
		default:
			out[4].Count++
		}
	}
	return out
}

// weekStart returns midnight of the Monday of t's ISO week, in t's location
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// ActivityDates are the timestamps the trend is built from
type ActivityDates struct {
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// WeeklyTrend returns one point per ISO week for the last weeks weeks, oldest
// first, the last one being the week of now
func WeeklyTrend(now time.Time, weeks int, activities []ActivityDates) []TrendPoint {
	if weeks < 1 {
		weeks = DefaultTrendWeeks
	}
	current := weekStart(now)
	first := current.AddDate(0, 0, -7*(weeks-1))

	points := make([]TrendPoint, weeks)
	for i := range points {
		start := first.AddDate(0, 0, 7*i)
		year, week := start.ISOWeek()
		points[i] = TrendPoint{Week: fmt.Sprintf("%d-W%02d", year, week), WeekStart: start}
	}

	index := func(t time.Time) int {
		t = t.In(now.Location())
		if t.Before(first) {
			return -1
		}
		i := int(weekStart(t).Sub(first).Hours()+12) / (24 * 7)
		if i >= weeks {
			return -1
		}
		return i
	}

	for _, a := range activities {
		if i := index(a.CreatedAt); i >= 0 {
			points[i].Created++
		}
		if a.CompletedAt != nil {
			if i := index(*a.CompletedAt); i >= 0 {
				points[i].Completed++
			}
		}
	}
	return points
}

// OverdueAlert builds the alert for an activity past its due date
func OverdueAlert(a model.DashboardActivity, now time.Time) Alert {
	days := int(now.Sub(*a.DueDate).Hours() / 24)
	return Alert{
		Kind:        AlertOverdueActivity,
		Priority:    a.Priority,
		Message:     fmt.Sprintf("Actividad \"%s\" vencida hace %d dias", a.Title, days),
		ReferenceID: a.ID,
	}
}

// LowAverageAlert builds the alert for a student below PassingGrade
func LowAverageAlert(s model.DashboardStudent) Alert {
	priority := model.PriorityMedium
	if s.AverageGrade < PassingGrade-10 {
		priority = model.PriorityHigh
	}
	return Alert{
		Kind:        AlertLowAverage,
		Priority:    priority,
		Message:     fmt.Sprintf("%s tiene un promedio de %.1f", s.Name, s.AverageGrade),
		ReferenceID: s.ID,
	}
}

// UrgentMessageAlert builds the alert for an unread high priority message
func UrgentMessageAlert(m model.DashboardMessage) Alert {
	return Alert{
		Kind:        AlertUrgentMessage,
		Priority:    model.PriorityHigh,
		Message:     fmt.Sprintf("Mensaje sin leer de %s: %s", m.Sender, m.Subject),
		ReferenceID: m.ID,
	}
}
