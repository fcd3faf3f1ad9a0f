package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/config"
	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/handlers"
	activity_handlers "github.com/sahilchouksey/academia-api/handlers/activity"
	admin_handlers "github.com/sahilchouksey/academia-api/handlers/admin"
	attendance_handlers "github.com/sahilchouksey/academia-api/handlers/attendance"
	auth_handlers "github.com/sahilchouksey/academia-api/handlers/auth"
	course_handlers "github.com/sahilchouksey/academia-api/handlers/course"
	dashboard_handlers "github.com/sahilchouksey/academia-api/handlers/dashboard"
	enrollment_handlers "github.com/sahilchouksey/academia-api/handlers/enrollment"
	faculty_handlers "github.com/sahilchouksey/academia-api/handlers/faculty"
	grade_handlers "github.com/sahilchouksey/academia-api/handlers/grade"
	group_handlers "github.com/sahilchouksey/academia-api/handlers/group"
	professor_handlers "github.com/sahilchouksey/academia-api/handlers/professor"
	program_handlers "github.com/sahilchouksey/academia-api/handlers/program"
	role_handlers "github.com/sahilchouksey/academia-api/handlers/role"
	student_handlers "github.com/sahilchouksey/academia-api/handlers/student"
	submission_handlers "github.com/sahilchouksey/academia-api/handlers/submission"
	user_handlers "github.com/sahilchouksey/academia-api/handlers/user"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/services/objectstore"
	"github.com/sahilchouksey/academia-api/utils"
	"github.com/sahilchouksey/academia-api/utils/auth"
	"github.com/sahilchouksey/academia-api/utils/kv"
	"github.com/sahilchouksey/academia-api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage, env *config.EnviornmentVariable) {
	if env.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "academia-api"
	}

	// Initialize JWT manager with config
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        env.JWT_SECRET,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	})

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis for brute force protection
	redisURL := env.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	var bruteForceProtection *middleware.BruteForceProtection
	redisStore, err := kv.NewRedisStore(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	} else {
		bruteForceProtection = middleware.NewBruteForceProtection(redisStore)
	}

	// Object storage for submission attachments
	var objects services.ObjectStore
	if env.StorageConfigured() {
		s3Store, err := objectstore.NewS3Store(objectstore.Config{
			AccessKey: env.STORAGE_ACCESS_KEY,
			SecretKey: env.STORAGE_SECRET_KEY,
			Bucket:    env.STORAGE_BUCKET,
			Region:    env.STORAGE_REGION,
			Endpoint:  env.STORAGE_ENDPOINT,
			PathStyle: env.STORAGE_ENDPOINT != "",
		})
		if err != nil {
			log.Printf("Warning: object storage unavailable: %v. Attachments will be disabled.", err)
		} else {
			objects = s3Store
		}
	} else {
		log.Println("Object storage not configured, attachments disabled")
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	userService := services.NewUserService(db)
	facultyService := services.NewFacultyService(db)
	programService := services.NewProgramService(db)
	courseService := services.NewCourseService(db)
	roleService := services.NewRoleService(db)
	studentService := services.NewStudentService(db)
	professorService := services.NewProfessorService(db)
	groupService := services.NewGroupService(db)
	scheduleService := services.NewScheduleService(db)
	enrollmentService := services.NewEnrollmentService(db)
	attendanceService := services.NewAttendanceService(db)
	activityService := services.NewActivityService(db)
	submissionService := services.NewSubmissionService(db, objects)
	gradeService := services.NewGradeService(db)
	dashboardService := services.NewDashboardService(db)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, userService, jwtManager, bruteForceProtection)
	facultyHandler := faculty_handlers.NewFacultyHandler(facultyService)
	programHandler := program_handlers.NewProgramHandler(programService)
	courseHandler := course_handlers.NewCourseHandler(courseService)
	roleHandler := role_handlers.NewRoleHandler(roleService)
	userHandler := user_handlers.NewUserHandler(userService)
	studentHandler := student_handlers.NewStudentHandler(studentService)
	professorHandler := professor_handlers.NewProfessorHandler(professorService)
	groupHandler := group_handlers.NewGroupHandler(groupService, scheduleService, attendanceService)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(enrollmentService)
	attendanceHandler := attendance_handlers.NewAttendanceHandler(attendanceService)
	activityHandler := activity_handlers.NewActivityHandler(activityService)
	submissionHandler := submission_handlers.NewSubmissionHandler(submissionService, enrollmentService, env.MAX_UPLOAD_SIZE_MB)
	gradeHandler := grade_handlers.NewGradeHandler(gradeService)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(dashboardService)

	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.Origins(),
		RateLimitRequests: env.RATE_LIMIT_MAX,
		RateLimitWindow:   env.RATE_LIMIT_WINDOW,
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", bruteForceProtection.Check(), authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/logout-all", authMiddleware.Required(), authHandler.LogoutAll)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Everything below needs a signed in user
	requireAuth := authMiddleware.Required()
	adminOnly := authMiddleware.RequireAdmin()
	staffOnly := authMiddleware.RequireStaff()

	// ==================== Catalog ====================

	faculties := api.Group("/faculties", requireAuth)
	faculties.Get("/", facultyHandler.ListFaculties)
	faculties.Get("/:id", facultyHandler.GetFaculty)
	faculties.Get("/:id/programs", facultyHandler.ListPrograms)
	faculties.Get("/:id/courses", facultyHandler.ListCourses)
	faculties.Get("/:id/professors", facultyHandler.ListProfessors)
	faculties.Post("/", adminOnly, facultyHandler.CreateFaculty)
	faculties.Put("/:id", adminOnly, facultyHandler.UpdateFaculty)
	faculties.Delete("/:id", adminOnly, facultyHandler.DeleteFaculty)

	programs := api.Group("/programs", requireAuth)
	programs.Get("/", programHandler.ListPrograms)
	programs.Get("/:id", programHandler.GetProgram)
	programs.Get("/:id/students", programHandler.ListStudents)
	programs.Post("/", adminOnly, programHandler.CreateProgram)
	programs.Put("/:id", adminOnly, programHandler.UpdateProgram)
	programs.Delete("/:id", adminOnly, programHandler.DeleteProgram)

	courses := api.Group("/courses", requireAuth)
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Get("/:id/groups", courseHandler.ListGroups)
	courses.Post("/", adminOnly, courseHandler.CreateCourse)
	courses.Put("/:id", adminOnly, courseHandler.UpdateCourse)
	courses.Delete("/:id", adminOnly, courseHandler.DeleteCourse)

	// ==================== People ====================

	roles := api.Group("/roles", requireAuth)
	roles.Get("/", roleHandler.ListRoles)
	roles.Get("/:id", roleHandler.GetRole)
	roles.Get("/:id/users", adminOnly, roleHandler.ListUsers)
	roles.Post("/", adminOnly, roleHandler.CreateRole)
	roles.Put("/:id", adminOnly, roleHandler.UpdateRole)
	roles.Delete("/:id", adminOnly, roleHandler.DeleteRole)

	users := api.Group("/users", requireAuth, adminOnly)
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Post("/", userHandler.CreateUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	students := api.Group("/students", requireAuth)
	students.Get("/", studentHandler.ListStudents)
	students.Get("/:id", studentHandler.GetStudent)
	students.Get("/:id/enrollments", studentHandler.ListEnrollments)
	students.Post("/", adminOnly, studentHandler.CreateStudent)
	students.Put("/:id", adminOnly, studentHandler.UpdateStudent)
	students.Delete("/:id", adminOnly, studentHandler.DeleteStudent)

	professors := api.Group("/professors", requireAuth)
	professors.Get("/", professorHandler.ListProfessors)
	professors.Get("/:id", professorHandler.GetProfessor)
	professors.Get("/:id/groups", professorHandler.ListGroups)
	professors.Post("/", adminOnly, professorHandler.CreateProfessor)
	professors.Put("/:id", adminOnly, professorHandler.UpdateProfessor)
	professors.Delete("/:id", adminOnly, professorHandler.DeleteProfessor)

	// ==================== Groups ====================

	groups := api.Group("/groups", requireAuth)
	groups.Get("/", groupHandler.ListGroups)
	groups.Get("/:id", groupHandler.GetGroup)
	groups.Get("/:id/enrollments", groupHandler.ListEnrollments)
	groups.Get("/:id/activities", groupHandler.ListActivities)
	groups.Get("/:id/schedules", groupHandler.ListSchedules)
	groups.Get("/:id/attendance", staffOnly, groupHandler.GetRoster)
	groups.Post("/:id/attendance", staffOnly, groupHandler.RecordRoster)
	groups.Post("/", adminOnly, groupHandler.CreateGroup)
	groups.Put("/:id", adminOnly, groupHandler.UpdateGroup)
	groups.Delete("/:id", adminOnly, groupHandler.DeleteGroup)
	groups.Post("/:id/schedules", adminOnly, groupHandler.CreateSchedule)
	groups.Put("/:id/schedules/:scheduleId", adminOnly, groupHandler.UpdateSchedule)
	groups.Delete("/:id/schedules/:scheduleId", adminOnly, groupHandler.DeleteSchedule)

	enrollments := api.Group("/enrollments", requireAuth)
	enrollments.Get("/", enrollmentHandler.ListEnrollments)
	enrollments.Get("/:id", enrollmentHandler.GetEnrollment)
	enrollments.Get("/:id/attendance", enrollmentHandler.ListAttendance)
	enrollments.Post("/", adminOnly, enrollmentHandler.CreateEnrollment)
	enrollments.Put("/:id", adminOnly, enrollmentHandler.UpdateEnrollment)
	enrollments.Delete("/:id", adminOnly, enrollmentHandler.DeleteEnrollment)

	attendance := api.Group("/attendance", requireAuth)
	attendance.Get("/", attendanceHandler.ListAttendance)
	attendance.Get("/:id", attendanceHandler.GetAttendance)
	attendance.Post("/", staffOnly, attendanceHandler.CreateAttendance)
	attendance.Put("/:id", staffOnly, attendanceHandler.UpdateAttendance)
	attendance.Delete("/:id", staffOnly, attendanceHandler.DeleteAttendance)

	// ==================== Grading ====================

	activities := api.Group("/activities", requireAuth)
	activities.Get("/", activityHandler.ListActivities)
	activities.Get("/:id", activityHandler.GetActivity)
	activities.Get("/:id/submissions", staffOnly, activityHandler.ListSubmissions)
	activities.Post("/", staffOnly, activityHandler.CreateActivity)
	activities.Put("/:id", staffOnly, activityHandler.UpdateActivity)
	activities.Delete("/:id", staffOnly, activityHandler.DeleteActivity)

	// Students may write their own submissions; ownership is checked in the handler
	submissions := api.Group("/submissions", requireAuth)
	submissions.Get("/", submissionHandler.ListSubmissions)
	submissions.Get("/:id", submissionHandler.GetSubmission)
	submissions.Post("/", submissionHandler.CreateSubmission)
	submissions.Put("/:id", submissionHandler.UpdateSubmission)
	submissions.Delete("/:id", submissionHandler.DeleteSubmission)
	submissions.Post("/:id/attachment", submissionHandler.UploadAttachment)
	submissions.Get("/:id/grade", submissionHandler.GetGrade)
	submissions.Put("/:id/grade", staffOnly, gradeHandler.UpdateSubmissionGrade)

	grades := api.Group("/grades", requireAuth)
	grades.Get("/", gradeHandler.ListGrades)
	grades.Get("/:id", gradeHandler.GetGrade)
	grades.Post("/", staffOnly, gradeHandler.CreateGrade)
	grades.Put("/:id", staffOnly, gradeHandler.UpdateGrade)
	grades.Delete("/:id", staffOnly, gradeHandler.DeleteGrade)

	// ==================== Dashboard ====================

	dashboard := api.Group("/dashboard", requireAuth, staffOnly)
	dashboard.Get("/stats", dashboardHandler.GetStats)

	dashboard.Get("/students", dashboardHandler.ListStudents)
	dashboard.Get("/students/:id", dashboardHandler.GetStudent)
	dashboard.Post("/students", dashboardHandler.CreateStudent)
	dashboard.Put("/students/:id", dashboardHandler.UpdateStudent)
	dashboard.Delete("/students/:id", dashboardHandler.DeleteStudent)

	dashboard.Get("/activities", dashboardHandler.ListActivities)
	dashboard.Get("/activities/:id", dashboardHandler.GetActivity)
	dashboard.Post("/activities", dashboardHandler.CreateActivity)
	dashboard.Put("/activities/:id", dashboardHandler.UpdateActivity)
	dashboard.Delete("/activities/:id", dashboardHandler.DeleteActivity)

	dashboard.Get("/messages", dashboardHandler.ListMessages)
	dashboard.Get("/messages/:id", dashboardHandler.GetMessage)
	dashboard.Post("/messages", dashboardHandler.CreateMessage)
	dashboard.Put("/messages/:id", dashboardHandler.UpdateMessage)
	dashboard.Patch("/messages/:id/read", dashboardHandler.MarkRead)
	dashboard.Delete("/messages/:id", dashboardHandler.DeleteMessage)

	// ==================== Admin ====================

	admin := api.Group("/admin", requireAuth, adminOnly)
	admin.Get("/schema", utils.MakeHTTPHandleFunc(admin_handlers.GetSchema, store))
	admin.Get("/overview", utils.MakeHTTPHandleFunc(admin_handlers.GetOverview, store))
}
