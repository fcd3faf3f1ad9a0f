package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// openTestDB connects to TEST_DATABASE_DSN and migrates the schema.
// Tests that need a database are skipped when it is not set.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	store, err := database.Open(dsn, "pgx", true)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Init(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store.DB()
}

// fixture is one faculty with a program, a course, a professor, a group and
// an enrolled student. Codes carry a suffix so runs do not collide.
type fixture struct {
	suffix     string
	faculty    model.Faculty
	program    model.AcademicProgram
	course     model.Course
	professor  model.Professor
	group      model.Group
	student    model.Student
	pupilID    uint // user behind student
	enrollment model.Enrollment
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{suffix: fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000_000)}

	roles := NewRoleService(db)
	role := model.Role{Name: "test-" + f.suffix}
	if err := roles.Create(ctx, &role); err != nil {
		t.Fatalf("create role: %v", err)
	}

	users := NewUserService(db)
	newUser := func(name string) *model.User {
		u, err := users.Create(ctx, NewUser{
			Email:    fmt.Sprintf("%s-%s@example.test", name, f.suffix),
			Password: "correct horse battery",
			FullName: name,
			RoleID:   role.ID,
			Active:   true,
		})
		if err != nil {
			t.Fatalf("create user %s: %v", name, err)
		}
		return u
	}
	lecturer := newUser("profesor")
	pupil := newUser("estudiante")
	f.pupilID = pupil.ID

	f.faculty = model.Faculty{Code: "F" + f.suffix, Name: "Facultad " + f.suffix}
	if err := NewFacultyService(db).Create(ctx, &f.faculty); err != nil {
		t.Fatalf("create faculty: %v", err)
	}

	f.program = model.AcademicProgram{Name: "Programa", Code: "P" + f.suffix, FacultyID: f.faculty.ID, Status: model.ProgramaActivo}
	if err := NewProgramService(db).Create(ctx, &f.program); err != nil {
		t.Fatalf("create program: %v", err)
	}

	f.course = model.Course{Code: "C" + f.suffix, Name: "Curso", Credits: 3, FacultyID: f.faculty.ID, Status: model.CursoActivo}
	if err := NewCourseService(db).Create(ctx, &f.course); err != nil {
		t.Fatalf("create course: %v", err)
	}

	f.professor = model.Professor{UserID: lecturer.ID, FacultyID: &f.faculty.ID}
	if err := NewProfessorService(db).Create(ctx, &f.professor); err != nil {
		t.Fatalf("create professor: %v", err)
	}

	f.group = model.Group{CourseID: f.course.ID, ProfessorID: f.professor.ID, Code: "G1", Term: "2026-1", Capacity: 1}
	if err := NewGroupService(db).Create(ctx, &f.group); err != nil {
		t.Fatalf("create group: %v", err)
	}

	f.student = model.Student{UserID: pupil.ID, ProgramID: f.program.ID, Status: model.EstudianteMatriculado}
	if err := NewStudentService(db).Create(ctx, &f.student); err != nil {
		t.Fatalf("create student: %v", err)
	}

	f.enrollment = model.Enrollment{StudentID: f.student.ID, GroupID: f.group.ID}
	if err := NewEnrollmentService(db).Create(ctx, &f.enrollment); err != nil {
		t.Fatalf("create enrollment: %v", err)
	}

	return f
}

func TestCatalogConstraints(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newFixture(t, db)

	dup := model.Faculty{Code: f.faculty.Code, Name: "Otra " + f.suffix}
	if err := NewFacultyService(db).Create(ctx, &dup); !errors.Is(err, database.ErrDuplicateKey) {
		t.Errorf("duplicate faculty code: got %v, want ErrDuplicateKey", err)
	}

	if err := NewFacultyService(db).Delete(ctx, f.faculty.ID); !errors.Is(err, database.ErrRestricted) {
		t.Errorf("delete faculty with programs: got %v, want ErrRestricted", err)
	}

	orphan := model.Course{Code: "X" + f.suffix, Name: "Huerfano", FacultyID: 0, Status: model.CursoActivo}
	if err := NewCourseService(db).Create(ctx, &orphan); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("course without faculty: got %v, want ErrNotFound", err)
	}
}

func TestFacultyDeleteDetachesProfessors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newFixture(t, db)

	faculties := NewFacultyService(db)
	empty := model.Faculty{Code: "E" + f.suffix, Name: "Vacia " + f.suffix}
	if err := faculties.Create(ctx, &empty); err != nil {
		t.Fatalf("create faculty: %v", err)
	}

	professors := NewProfessorService(db)
	if _, err := professors.Update(ctx, f.professor.ID, func(p *model.Professor) error {
		p.FacultyID = &empty.ID
		return nil
	}); err != nil {
		t.Fatalf("move professor: %v", err)
	}

	if err := faculties.Delete(ctx, empty.ID); err != nil {
		t.Fatalf("delete faculty: %v", err)
	}

	p, err := professors.Get(ctx, f.professor.ID)
	if err != nil {
		t.Fatalf("get professor: %v", err)
	}
	if p.FacultyID != nil {
		t.Errorf("professor faculty = %d, want nil", *p.FacultyID)
	}
}

func TestEnrollmentCapacityAndUniqueness(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newFixture(t, db)
	enrollments := NewEnrollmentService(db)

	again := model.Enrollment{StudentID: f.student.ID, GroupID: f.group.ID}
	if err := enrollments.Create(ctx, &again); !errors.Is(err, ErrGroupFull) {
		t.Errorf("enrollment into a full group: got %v, want ErrGroupFull", err)
	}

	if _, err := NewGroupService(db).Update(ctx, f.group.ID, func(g *model.Group) error {
		g.Capacity = 5
		return nil
	}); err != nil {
		t.Fatalf("raise capacity: %v", err)
	}

	again = model.Enrollment{StudentID: f.student.ID, GroupID: f.group.ID}
	if err := enrollments.Create(ctx, &again); !errors.Is(err, database.ErrDuplicateKey) {
		t.Errorf("second enrollment of the same student: got %v, want ErrDuplicateKey", err)
	}
}

func TestAttendanceCopiesEnrollmentGroup(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newFixture(t, db)
	attendance := NewAttendanceService(db)

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	rows, err := attendance.RecordRoster(ctx, f.group.ID, day, []RosterEntry{
		{EnrollmentID: f.enrollment.ID, Status: model.AsistenciaPresente},
	})
	if err != nil {
		t.Fatalf("record roster: %v", err)
	}
	if len(rows) != 1 || rows[0].GroupID != f.group.ID {
		t.Fatalf("roster rows = %+v, want one row in group %d", rows, f.group.ID)
	}

	// recording the same date again overwrites
	if _, err := attendance.RecordRoster(ctx, f.group.ID, day, []RosterEntry{
		{EnrollmentID: f.enrollment.ID, Status: model.AsistenciaTardanza},
	}); err != nil {
		t.Fatalf("record roster again: %v", err)
	}

	roster, err := NewGroupService(db).Roster(ctx, f.group.ID, day)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 1 || roster[0].Status != model.AsistenciaTardanza {
		t.Errorf("roster = %+v, want one Tardanza record", roster)
	}

	single := model.Attendance{EnrollmentID: f.enrollment.ID, GroupID: 999999, Date: rows[0].Date, Status: model.AsistenciaAusente}
	if err := attendance.Create(ctx, &single); !errors.Is(err, database.ErrDuplicateKey) {
		t.Errorf("second record for the same date: got %v, want ErrDuplicateKey", err)
	}

	// the same enrollment on another date is a separate record
	next := model.Attendance{EnrollmentID: f.enrollment.ID, Date: datatypes.Date(day.AddDate(0, 0, 1)), Status: model.AsistenciaPresente}
	if err := attendance.Create(ctx, &next); err != nil {
		t.Fatalf("record for the next date: %v", err)
	}
	if next.GroupID != f.group.ID {
		t.Errorf("next record group = %d, want %d", next.GroupID, f.group.ID)
	}
	if _, err := attendance.RecordRoster(ctx, f.group.ID, day.AddDate(0, 0, 7), []RosterEntry{
		{EnrollmentID: f.enrollment.ID, Status: model.AsistenciaAusente},
	}); err != nil {
		t.Fatalf("record roster a week later: %v", err)
	}
	history, err := NewEnrollmentService(db).Attendance(ctx, f.enrollment.ID)
	if err != nil {
		t.Fatalf("enrollment attendance: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("enrollment has %d attendance records, want 3", len(history))
	}
}

func TestGradingFlow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newFixture(t, db)

	activity := model.GradableActivity{GroupID: f.group.ID, Title: "Taller 1", Kind: "tarea", MaxScore: 20, Weight: 10}
	if err := NewActivityService(db).Create(ctx, &activity); err != nil {
		t.Fatalf("create activity: %v", err)
	}

	submissions := NewSubmissionService(db, nil)
	sub := model.Submission{ActivityID: activity.ID, EnrollmentID: f.enrollment.ID, Content: "respuesta"}
	if err := submissions.Create(ctx, &sub); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	grades := NewGradeService(db)
	if err := grades.Create(ctx, &model.Grade{SubmissionID: sub.ID, Score: -1}); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative score: got %v, want ErrNegativeScore", err)
	}

	grade := model.Grade{SubmissionID: sub.ID, Score: 18}
	if err := grades.Create(ctx, &grade); err != nil {
		t.Fatalf("create grade: %v", err)
	}
	if err := grades.Create(ctx, &model.Grade{SubmissionID: sub.ID, Score: 10}); !errors.Is(err, database.ErrDuplicateKey) {
		t.Errorf("second grade: got %v, want ErrDuplicateKey", err)
	}

	score := 19.5
	updated, err := grades.UpdateForSubmission(ctx, sub.ID, GradeChange{Score: &score})
	if err != nil {
		t.Fatalf("update grade: %v", err)
	}
	if updated.ID != grade.ID || updated.Score != score {
		t.Errorf("updated grade = %+v, want id %d score %v", updated, grade.ID, score)
	}

	got, err := submissions.Grade(ctx, sub.ID)
	if err != nil {
		t.Fatalf("submission grade: %v", err)
	}
	if got.Score != score {
		t.Errorf("submission grade = %v, want %v", got.Score, score)
	}
}

func TestZeroScoreGrade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newFixture(t, db)

	activity := model.GradableActivity{GroupID: f.group.ID, Title: "Quiz", Kind: "examen", MaxScore: 10, Weight: 5}
	if err := NewActivityService(db).Create(ctx, &activity); err != nil {
		t.Fatalf("create activity: %v", err)
	}
	sub := model.Submission{ActivityID: activity.ID, EnrollmentID: f.enrollment.ID}
	if err := NewSubmissionService(db, nil).Create(ctx, &sub); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	grade := model.Grade{SubmissionID: sub.ID, Score: 0}
	if err := NewGradeService(db).Create(ctx, &grade); err != nil {
		t.Fatalf("zero score grade: %v", err)
	}
	got, err := NewGradeService(db).Get(ctx, grade.ID)
	if err != nil {
		t.Fatalf("get grade: %v", err)
	}
	if got.Score != 0 {
		t.Errorf("score = %v, want 0", got.Score)
	}
}

func TestGradedSubmissionOwnership(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newFixture(t, db)

	activity := model.GradableActivity{GroupID: f.group.ID, Title: "Informe", Kind: "tarea", MaxScore: 20, Weight: 10}
	if err := NewActivityService(db).Create(ctx, &activity); err != nil {
		t.Fatalf("create activity: %v", err)
	}
	submissions := NewSubmissionService(db, nil)
	sub := model.Submission{ActivityID: activity.ID, EnrollmentID: f.enrollment.ID, Content: "borrador"}
	if err := submissions.Create(ctx, &sub); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	edit := func(s *model.Submission) error {
		s.Content = "final"
		return nil
	}
	if _, err := submissions.Update(ctx, sub.ID, OwnerWrite, edit); err != nil {
		t.Fatalf("owner edit before grading: %v", err)
	}

	grades := NewGradeService(db)
	grade := model.Grade{SubmissionID: sub.ID, Score: 15}
	if err := grades.Create(ctx, &grade); err != nil {
		t.Fatalf("create grade: %v", err)
	}

	if _, err := submissions.Update(ctx, sub.ID, OwnerWrite, edit); !errors.Is(err, ErrSubmissionGraded) {
		t.Errorf("owner edit after grading: got %v, want ErrSubmissionGraded", err)
	}
	if err := submissions.Delete(ctx, sub.ID, OwnerWrite); !errors.Is(err, ErrSubmissionGraded) {
		t.Errorf("owner delete after grading: got %v, want ErrSubmissionGraded", err)
	}

	mine, err := submissions.List(ctx, SubmissionFilter{UserID: f.pupilID}, ListParams{})
	if err != nil {
		t.Fatalf("list own submissions: %v", err)
	}
	if mine.Total != 1 || mine.Items[0].ID != sub.ID {
		t.Errorf("own submissions = %+v, want only %d", mine.Items, sub.ID)
	}
	// the professor's user has no student profile
	theirs, err := submissions.List(ctx, SubmissionFilter{UserID: f.professor.UserID}, ListParams{})
	if err != nil {
		t.Fatalf("list other submissions: %v", err)
	}
	if theirs.Total != 0 {
		t.Errorf("user without enrollments sees %d submissions", theirs.Total)
	}
	if ok, err := submissions.BelongsToUser(ctx, sub.ID, f.pupilID); err != nil || !ok {
		t.Errorf("BelongsToUser(owner) = %v, %v; want true", ok, err)
	}
	if ok, err := submissions.BelongsToUser(ctx, sub.ID, f.professor.UserID); err != nil || ok {
		t.Errorf("BelongsToUser(other) = %v, %v; want false", ok, err)
	}

	ownGrades, err := grades.List(ctx, GradeFilter{UserID: f.pupilID}, ListParams{})
	if err != nil {
		t.Fatalf("list own grades: %v", err)
	}
	if ownGrades.Total != 1 || ownGrades.Items[0].ID != grade.ID {
		t.Errorf("own grades = %+v, want only %d", ownGrades.Items, grade.ID)
	}
	if ok, err := grades.BelongsToUser(ctx, grade.ID, f.professor.UserID); err != nil || ok {
		t.Errorf("grade BelongsToUser(other) = %v, %v; want false", ok, err)
	}

	// staff keep full control
	if _, err := submissions.Update(ctx, sub.ID, StaffWrite, edit); err != nil {
		t.Errorf("staff edit after grading: %v", err)
	}

	other := model.Group{CourseID: f.course.ID, ProfessorID: f.professor.ID, Code: "G2", Term: "2026-1", Capacity: 5}
	if err := NewGroupService(db).Create(ctx, &other); err != nil {
		t.Fatalf("create group: %v", err)
	}
	enrollments := NewEnrollmentService(db)
	move := func(e *model.Enrollment) error {
		e.GroupID = other.ID
		return nil
	}
	if _, err := enrollments.Update(ctx, f.enrollment.ID, move); !errors.Is(err, database.ErrRestricted) {
		t.Errorf("moving an enrollment with submissions: got %v, want ErrRestricted", err)
	}

	if err := submissions.Delete(ctx, sub.ID, StaffWrite); err != nil {
		t.Fatalf("staff delete after grading: %v", err)
	}
	moved, err := enrollments.Update(ctx, f.enrollment.ID, move)
	if err != nil {
		t.Fatalf("move enrollment without submissions: %v", err)
	}
	if moved.GroupID != other.ID {
		t.Errorf("enrollment group = %d, want %d", moved.GroupID, other.ID)
	}
}

func TestDashboardStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	stats, err := NewDashboardService(db).Stats(ctx, 4)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.WeeklyTrend) != 4 {
		t.Errorf("weekly trend has %d points, want 4", len(stats.WeeklyTrend))
	}
	if len(stats.GradeDistribution) != len(gradeBuckets) {
		t.Errorf("grade distribution has %d buckets, want %d", len(stats.GradeDistribution), len(gradeBuckets))
	}
	if stats.ActiveStudents > stats.TotalStudents {
		t.Errorf("active students %d exceed total %d", stats.ActiveStudents, stats.TotalStudents)
	}
}
