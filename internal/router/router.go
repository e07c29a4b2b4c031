package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"officetrack/internal/auth"
	"officetrack/internal/config"
	"officetrack/internal/handler"
	"officetrack/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessionStore auth.SessionStoreInterface,
	authHandler *handler.AuthHandler,
	employeeHandler *handler.EmployeeHandler,
	taskHandler *handler.TaskHandler,
	announcementHandler *handler.AnnouncementHandler,
	fileHandler *handler.FileHandler,
	attendanceHandler *handler.AttendanceHandler,
	approvalHandler *handler.ApprovalHandler,
	activityHandler *handler.ActivityHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes. /me and /logout read the session cookie themselves so
	// they can answer without a valid session.
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/me", authHandler.Me)

	// Secured routes (require a valid, non-revoked session cookie)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}), SessionGuard(sessionStore))

	// Routes shared by both roles
	secured.GET("/announcements", announcementHandler.List)
	secured.GET("/files", fileHandler.List)
	secured.GET("/uploads/:filename", fileHandler.Download)
	secured.GET("/employee/top-performers", taskHandler.TopPerformers)

	// Admin routes
	admin := secured.Group("/admin", RequireRole(model.RoleAdmin))
	admin.POST("/register-employee", employeeHandler.Register)
	admin.GET("/employees", employeeHandler.List)
	admin.GET("/employee/:id", employeeHandler.Get)
	admin.PUT("/update-employee/:id", employeeHandler.Update)
	admin.DELETE("/delete-employee/:id", employeeHandler.Delete)

	admin.POST("/create-task", taskHandler.Create)
	admin.GET("/all-tasks", taskHandler.ListAll)
	admin.GET("/task/:id", taskHandler.Get)
	admin.PUT("/update-task/:id", taskHandler.Update)
	admin.DELETE("/delete-task/:id", taskHandler.Delete)

	admin.POST("/create-announcement", announcementHandler.Create)
	admin.POST("/upload-file", fileHandler.Upload)

	admin.GET("/attendance", attendanceHandler.ListAll)
	admin.GET("/attendance/download", attendanceHandler.DownloadCSV)
	admin.GET("/attendance/export", attendanceHandler.ExportXLSX)

	admin.GET("/approvals", approvalHandler.Queue)
	admin.POST("/approvals/action", approvalHandler.Decide)

	admin.GET("/activity-log", activityHandler.AdminLog)
	admin.GET("/activity", activityHandler.AdminRecent)
	admin.POST("/clear-activity-log", activityHandler.Clear)

	// Employee routes
	employee := secured.Group("/employee", RequireRole(model.RoleEmployee))
	employee.GET("/tasks", taskHandler.ListMine)
	employee.POST("/update-task-status", taskHandler.UpdateStatus)
	employee.GET("/files", fileHandler.List)

	employee.POST("/check-in", attendanceHandler.CheckIn)
	employee.POST("/check-out", attendanceHandler.CheckOut)
	employee.GET("/today-attendance", attendanceHandler.Today)
	employee.GET("/attendance", attendanceHandler.Summary)

	employee.GET("/profile", employeeHandler.Profile)
	employee.GET("/admins", employeeHandler.ListAdmins)

	employee.POST("/approvals", approvalHandler.Submit)
	employee.GET("/approvals", approvalHandler.ListMine)

	employee.GET("/recent-activity", activityHandler.RecentForMe)
	employee.GET("/has-new", activityHandler.HasNew)
	employee.POST("/mark-seen", activityHandler.MarkSeen)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
