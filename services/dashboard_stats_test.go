package services

import (
	"strings"
	"testing"
	"time"

	"github.com/sahilchouksey/academia-api/model"
)

func TestBucketGrades(t *testing.T) {
	buckets := BucketGrades([]float64{0, 45.5, 59.99, 60, 69.9, 75, 80, 89.99, 90, 100, -3, 104})

	want := map[string]int64{
		"0-59":   4, // includes the clamped -3
		"60-69":  2,
		"70-79":  1,
		"80-89":  2,
		"90-100": 3, // includes the clamped 104
	}

	if len(buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(buckets), len(want))
	}
	for _, b := range buckets {
		if b.Count != want[b.Label] {
			t.Errorf("bucket %s = %d, want %d", b.Label, b.Count, want[b.Label])
		}
	}
}

func TestBucketGradesDoesNotShareState(t *testing.T) {
	BucketGrades([]float64{95, 95})
	for _, b := range BucketGrades(nil) {
		if b.Count != 0 {
			t.Fatalf("bucket %s = %d after an earlier call", b.Label, b.Count)
		}
	}
}

func TestWeeklyTrend(t *testing.T) {
	// Wednesday of ISO week 2026-W08
	now := time.Date(2026, time.February, 18, 15, 30, 0, 0, time.UTC)
	day := func(m time.Month, d int) time.Time { return time.Date(2026, m, d, 10, 0, 0, 0, time.UTC) }
	completed := day(time.February, 10)

	activities := []ActivityDates{
		{CreatedAt: day(time.February, 17)},
		{CreatedAt: time.Date(2026, time.January, 26, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: day(time.January, 25)}, // before the window
		{CreatedAt: day(time.February, 2), CompletedAt: &completed},
		{CreatedAt: day(time.February, 23)}, // after now's week
	}

	points := WeeklyTrend(now, 4, activities)
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}

	wantWeeks := []string{"2026-W05", "2026-W06", "2026-W07", "2026-W08"}
	wantCreated := []int64{1, 1, 0, 1}
	wantCompleted := []int64{0, 0, 1, 0}
	for i, p := range points {
		if p.Week != wantWeeks[i] {
			t.Errorf("point %d week = %s, want %s", i, p.Week, wantWeeks[i])
		}
		if p.WeekStart.Weekday() != time.Monday {
			t.Errorf("point %d starts on %s", i, p.WeekStart.Weekday())
		}
		if p.Created != wantCreated[i] || p.Completed != wantCompleted[i] {
			t.Errorf("point %d = %d created / %d completed, want %d / %d",
				i, p.Created, p.Completed, wantCreated[i], wantCompleted[i])
		}
	}
}

func TestWeeklyTrendDefaultWeeks(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := WeeklyTrend(now, 0, nil)
	if len(points) != DefaultTrendWeeks {
		t.Fatalf("got %d points, want %d", len(points), DefaultTrendWeeks)
	}
	// 2026-01-01 belongs to ISO week 2026-W01 which starts on 2025-12-29
	last := points[len(points)-1]
	if last.Week != "2026-W01" || !last.WeekStart.Equal(time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last point = %s starting %s", last.Week, last.WeekStart)
	}
}

func TestAlerts(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(-72 * time.Hour)

	overdue := OverdueAlert(model.DashboardActivity{ID: 4, Title: "Informe", Priority: model.PriorityLow, DueDate: &due}, now)
	if overdue.Kind != AlertOverdueActivity || overdue.ReferenceID != 4 || overdue.Priority != model.PriorityLow {
		t.Errorf("unexpected overdue alert: %+v", overdue)
	}
	if !strings.Contains(overdue.Message, "3 dias") {
		t.Errorf("message = %q", overdue.Message)
	}

	if a := LowAverageAlert(model.DashboardStudent{ID: 1, Name: "Ana", AverageGrade: 42}); a.Priority != model.PriorityHigh {
		t.Errorf("average 42 priority = %s, want high", a.Priority)
	}
	if a := LowAverageAlert(model.DashboardStudent{ID: 2, Name: "Luis", AverageGrade: 55}); a.Priority != model.PriorityMedium {
		t.Errorf("average 55 priority = %s, want medium", a.Priority)
	}

	msg := UrgentMessageAlert(model.DashboardMessage{ID: 9, Sender: "Coordinacion", Subject: "Cierre de notas"})
	if msg.Kind != AlertUrgentMessage || msg.Priority != model.PriorityHigh || msg.ReferenceID != 9 {
		t.Errorf("unexpected message alert: %+v", msg)
	}
}
