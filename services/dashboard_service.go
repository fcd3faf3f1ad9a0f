package services

import (
	"context"
	"time"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/utils/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// alertLimit caps each alert kind
const alertLimit = 10

// DashboardService manages the dashboard records and computes their statistics
type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

// DashboardStudentFilter narrows dashboard student lists
type DashboardStudentFilter struct {
	Status model.StatusEnum
	Search string
}

// DashboardActivityFilter narrows dashboard activity lists
type DashboardActivityFilter struct {
	Status    model.ActivityStatusEnum
	Priority  model.PriorityEnum
	Category  model.CategoryEnum
	StudentID uint
	Overdue   bool
}

// DashboardMessageFilter narrows message lists
type DashboardMessageFilter struct {
	Unread   bool
	Priority model.PriorityEnum
}

// --- students ---

// CreateStudent adds a student card
func (s *DashboardService) CreateStudent(ctx context.Context, st *model.DashboardStudent) error {
	if st.Status == "" {
		st.Status = model.StatusActive
	}
	return storeErr("create dashboard student", s.db.WithContext(ctx).Create(st).Error)
}

// GetStudent loads one student card
func (s *DashboardService) GetStudent(ctx context.Context, id uint) (*model.DashboardStudent, error) {
	var st model.DashboardStudent
	if err := findByID(s.db.WithContext(ctx), &st, id, "dashboard student"); err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStudents returns student cards ordered by name
func (s *DashboardService) ListStudents(ctx context.Context, filter DashboardStudentFilter, params ListParams) (*Page[model.DashboardStudent], error) {
	query := s.db.WithContext(ctx).Model(&model.DashboardStudent{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	return paginate[model.DashboardStudent](query, params, "name ASC")
}

// UpdateStudent applies changes to a student card under a row lock
func (s *DashboardService) UpdateStudent(ctx context.Context, id uint, apply func(*model.DashboardStudent) error) (*model.DashboardStudent, error) {
	var st model.DashboardStudent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &st, id, "dashboard student"); err != nil {
			return err
		}
		if err := apply(&st); err != nil {
			return err
		}
		return storeErr("update dashboard student", tx.Save(&st).Error)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// DeleteStudent removes a student card. Its activities stay, unassigned.
func (s *DashboardService) DeleteStudent(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteByID(tx, &model.DashboardStudent{}, id, "dashboard student")
	})
}

// --- activities ---

// completion keeps CompletedAt consistent with the status
func completion(a *model.DashboardActivity, now time.Time) {
	if a.Status == model.ActivityCompleted {
		if a.CompletedAt == nil {
			a.CompletedAt = &now
		}
		return
	}
	a.CompletedAt = nil
}

// CreateActivity adds an activity card
func (s *DashboardService) CreateActivity(ctx context.Context, a *model.DashboardActivity) error {
	if a.Status == "" {
		a.Status = model.ActivityPending
	}
	if a.Priority == "" {
		a.Priority = model.PriorityMedium
	}
	completion(a, s.now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.StudentID != nil {
			if err := mustExist(tx, &model.DashboardStudent{}, *a.StudentID, "dashboard student"); err != nil {
				return err
			}
		}
		return storeErr("create dashboard activity", tx.Omit(clause.Associations).Create(a).Error)
	})
}

// GetActivity loads one activity card with its student
func (s *DashboardService) GetActivity(ctx context.Context, id uint) (*model.DashboardActivity, error) {
	var a model.DashboardActivity
	if err := findByID(s.db.WithContext(ctx).Preload("Student"), &a, id, "dashboard activity"); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListActivities returns activity cards by due date, undated last
func (s *DashboardService) ListActivities(ctx context.Context, filter DashboardActivityFilter, params ListParams) (*Page[model.DashboardActivity], error) {
	query := s.db.WithContext(ctx).Model(&model.DashboardActivity{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Overdue {
		query = query.Where("due_date < ? AND status <> ?", s.now(), model.ActivityCompleted)
	}
	return paginate[model.DashboardActivity](query, params, "due_date ASC NULLS LAST, id ASC", "Student")
}

// UpdateActivity applies changes to an activity card under a row lock.
// Moving to completed stamps CompletedAt; leaving it clears the stamp.
func (s *DashboardService) UpdateActivity(ctx context.Context, id uint, apply func(*model.DashboardActivity) error) (*model.DashboardActivity, error) {
	var a model.DashboardActivity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &a, id, "dashboard activity"); err != nil {
			return err
		}
		before := a.StudentID
		if err := apply(&a); err != nil {
			return err
		}
		if a.StudentID != nil && (before == nil || *before != *a.StudentID) {
			if err := mustExist(tx, &model.DashboardStudent{}, *a.StudentID, "dashboard student"); err != nil {
				return err
			}
		}
		completion(&a, s.now())
		a.Student = nil
		return storeErr("update dashboard activity", tx.Omit(clause.Associations).Save(&a).Error)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteActivity removes an activity card
func (s *DashboardService) DeleteActivity(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.DashboardActivity{}, id, "dashboard activity")
}

// --- messages ---

// CreateMessage stores a message. HTML in the content is reduced to its text.
func (s *DashboardService) CreateMessage(ctx context.Context, m *model.DashboardMessage) error {
	m.Content = validation.StripHTML(m.Content)
	if m.Priority == "" {
		m.Priority = model.PriorityMedium
	}
	if m.SentAt.IsZero() {
		m.SentAt = s.now()
	}
	return storeErr("create dashboard message", s.db.WithContext(ctx).Create(m).Error)
}

// GetMessage loads one message
func (s *DashboardService) GetMessage(ctx context.Context, id uint) (*model.DashboardMessage, error) {
	var m model.DashboardMessage
	if err := findByID(s.db.WithContext(ctx), &m, id, "dashboard message"); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMessages returns messages, newest first
func (s *DashboardService) ListMessages(ctx context.Context, filter DashboardMessageFilter, params ListParams) (*Page[model.DashboardMessage], error) {
	query := s.db.WithContext(ctx).Model(&model.DashboardMessage{})
	if filter.Unread {
		query = query.Where("read = ?", false)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	return paginate[model.DashboardMessage](query, params, "sent_at DESC, id DESC")
}

// UpdateMessage applies changes to a message under a row lock
func (s *DashboardService) UpdateMessage(ctx context.Context, id uint, apply func(*model.DashboardMessage) error) (*model.DashboardMessage, error) {
	var m model.DashboardMessage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &m, id, "dashboard message"); err != nil {
			return err
		}
		if err := apply(&m); err != nil {
			return err
		}
		m.Content = validation.StripHTML(m.Content)
		return storeErr("update dashboard message", tx.Save(&m).Error)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkMessageRead sets the read flag of a message
func (s *DashboardService) MarkMessageRead(ctx context.Context, id uint, read bool) error {
	result := s.db.WithContext(ctx).Model(&model.DashboardMessage{}).Where("id = ?", id).Update("read", read)
	if result.Error != nil {
		return storeErr("mark message read", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NotFound("dashboard message", id)
	}
	return nil
}

// DeleteMessage removes a message
func (s *DashboardService) DeleteMessage(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.DashboardMessage{}, id, "dashboard message")
}

// --- stats ---

type statusCount struct {
	Status string
	Total  int64
}

// Stats computes the dashboard summary. weeks sets the length of the weekly
// trend; values below 1 use DefaultTrendWeeks.
func (s *DashboardService) Stats(ctx context.Context, weeks int) (*DashboardStats, error) {
	if weeks < 1 {
		weeks = DefaultTrendWeeks
	}
	now := s.now()
	db := s.db.WithContext(ctx)
	stats := &DashboardStats{GeneratedAt: now}

	if err := db.Model(&model.DashboardStudent{}).Count(&stats.TotalStudents).Error; err != nil {
		return nil, storeErr("count dashboard students", err)
	}
	if err := db.Model(&model.DashboardStudent{}).Where("status = ?", model.StatusActive).
		Count(&stats.ActiveStudents).Error; err != nil {
		return nil, storeErr("count active dashboard students", err)
	}

	var counts []statusCount
	if err := db.Model(&model.DashboardActivity{}).Select("status, COUNT(*) AS total").
		Group("status").Scan(&counts).Error; err != nil {
		return nil, storeErr("count dashboard activities", err)
	}
	for _, c := range counts {
		stats.TotalActivities += c.Total
		switch model.ActivityStatusEnum(c.Status) {
		case model.ActivityPending:
			stats.PendingActivities = c.Total
		case model.ActivityInProgress:
			stats.InProgressActivities = c.Total
		case model.ActivityCompleted:
			stats.CompletedActivities = c.Total
		}
	}

	if err := db.Model(&model.DashboardActivity{}).
		Where("due_date < ? AND status <> ?", now, model.ActivityCompleted).
		Count(&stats.OverdueActivities).Error; err != nil {
		return nil, storeErr("count overdue activities", err)
	}
	if err := db.Model(&model.DashboardMessage{}).Where("read = ?", false).
		Count(&stats.UnreadMessages).Error; err != nil {
		return nil, storeErr("count unread messages", err)
	}

	var averages struct {
		Grade      float64
		Attendance float64
	}
	if err := db.Model(&model.DashboardStudent{}).Where("status = ?", model.StatusActive).
		Select("COALESCE(AVG(average_grade), 0) AS grade, COALESCE(AVG(attendance_rate), 0) AS attendance").
		Scan(&averages).Error; err != nil {
		return nil, storeErr("average dashboard students", err)
	}
	stats.AverageGrade = round2(averages.Grade)
	stats.AverageAttendance = round2(averages.Attendance)

	var grades []float64
	if err := db.Model(&model.DashboardStudent{}).Where("status = ?", model.StatusActive).
		Pluck("average_grade", &grades).Error; err != nil {
		return nil, storeErr("load grade averages", err)
	}
	stats.GradeDistribution = BucketGrades(grades)

	since := weekStart(now).AddDate(0, 0, -7*(weeks-1))
	var dates []ActivityDates
	if err := db.Model(&model.DashboardActivity{}).Select("created_at, completed_at").
		Where("created_at >= ? OR completed_at >= ?", since, since).
		Scan(&dates).Error; err != nil {
		return nil, storeErr("load activity dates", err)
	}
	stats.WeeklyTrend = WeeklyTrend(now, weeks, dates)

	alerts, err := s.alerts(db, now)
	if err != nil {
		return nil, err
	}
	stats.Alerts = alerts

	return stats, nil
}

func (s *DashboardService) alerts(db *gorm.DB, now time.Time) ([]Alert, error) {
	alerts := []Alert{}

	var overdue []model.DashboardActivity
	if err := db.Where("due_date < ? AND status <> ?", now, model.ActivityCompleted).
		Order("due_date ASC").Limit(alertLimit).Find(&overdue).Error; err != nil {
		return nil, storeErr("load overdue activities", err)
	}
	for _, a := range overdue {
		alerts = append(alerts, OverdueAlert(a, now))
	}

	var low []model.DashboardStudent
	if err := db.Where("status = ? AND average_grade < ?", model.StatusActive, PassingGrade).
		Order("average_grade ASC").Limit(alertLimit).Find(&low).Error; err != nil {
		return nil, storeErr("load low average students", err)
	}
	for _, st := range low {
		alerts = append(alerts, LowAverageAlert(st))
	}

	var urgent []model.DashboardMessage
	if err := db.Where("read = ? AND priority = ?", false, model.PriorityHigh).
		Order("sent_at DESC").Limit(alertLimit).Find(&urgent).Error; err != nil {
		return nil, storeErr("load urgent messages", err)
	}
	for _, m := range urgent {
		alerts = append(alerts, UrgentMessageAlert(m))
	}

	return alerts, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
