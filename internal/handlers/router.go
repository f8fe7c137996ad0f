package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/services"
	"github.com/SAP-F-2025/academic-records-service/internal/utils"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	teacherHandler *TeacherHandler
	studentHandler *StudentHandler

	courseHandler       *ReferenceHandler[models.Course]
	departmentHandler   *ReferenceHandler[models.Department]
	dayHandler          *ReferenceHandler[models.Day]
	roomHandler         *ReferenceHandler[models.Room]
	tableTypeHandler    *ReferenceHandler[models.TableType]
	tableHandler        *ReferenceHandler[models.Table]
	groupStudentHandler *ReferenceHandler[models.GroupStudent]

	authMiddleware *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	bv *validator.BusinessValidator,
	logger utils.Logger,
	tokens *security.TokenManager,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Account(), logger),
		userHandler:    NewUserHandler(serviceManager.Account(), serviceManager.User(), logger),
		teacherHandler: NewTeacherHandler(serviceManager.Teacher(), logger),
		studentHandler: NewStudentHandler(serviceManager.Student(), logger),

		courseHandler:       NewCourseHandler(serviceManager.Course(), bv, logger),
		departmentHandler:   NewDepartmentHandler(serviceManager.Department(), bv, logger),
		dayHandler:          NewDayHandler(serviceManager.Day(), bv, logger),
		roomHandler:         NewRoomHandler(serviceManager.Room(), bv, logger),
		tableTypeHandler:    NewTableTypeHandler(serviceManager.TableType(), bv, logger),
		tableHandler:        NewTableHandler(serviceManager.Table(), bv, logger),
		groupStudentHandler: NewGroupStudentHandler(serviceManager.GroupStudent(), bv, logger),

		authMiddleware: NewJWTAuthMiddleware(tokens),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Open routes: login, token handling, activation and self-registration
	auth := v1.Group("/auth")
	{
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/refresh", hm.authHandler.RefreshToken)
		auth.POST("/verify", hm.authHandler.VerifyToken)
		auth.POST("/activate", hm.authHandler.ActivateAccount)
	}
	v1.POST("/users", hm.userHandler.Register)

	// Everything below requires a valid access token
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.POST("/auth/change-password", hm.authHandler.ChangePassword)

		// User directory; mutations are admin-only
		users := authed.Group("/users")
		{
			users.GET("/me", hm.userHandler.GetMe)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.DeleteUser)
		}

		// Teacher profiles; mutations are staff/admin only
		teachers := authed.Group("/teachers")
		{
			teachers.GET("", hm.teacherHandler.ListTeachers)
			teachers.GET("/:id", hm.teacherHandler.GetTeacher)
			teachers.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.teacherHandler.CreateTeacher)
			teachers.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.teacherHandler.UpdateTeacher)
			teachers.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.teacherHandler.DeleteTeacher)
		}

		// Student records; provisioning and mutations are staff/admin only
		students := authed.Group("/students")
		{
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.studentHandler.ExportStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.studentHandler.ProvisionStudent)
			students.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.studentHandler.UpdateStudent)
			students.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.studentHandler.DeleteStudent)
		}

		// Reference data; reads for everyone, writes for staff/admin
		setupReferenceRoutes(authed, "/courses", hm.courseHandler, hm.authMiddleware)
		setupReferenceRoutes(authed, "/departments", hm.departmentHandler, hm.authMiddleware)
		setupReferenceRoutes(authed, "/days", hm.dayHandler, hm.authMiddleware)
		setupReferenceRoutes(authed, "/rooms", hm.roomHandler, hm.authMiddleware)
		setupReferenceRoutes(authed, "/table-types", hm.tableTypeHandler, hm.authMiddleware)
		setupReferenceRoutes(authed, "/tables", hm.tableHandler, hm.authMiddleware)
		setupReferenceRoutes(authed, "/group-students", hm.groupStudentHandler, hm.authMiddleware)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "academic-records-service",
		})
	})
}

func setupReferenceRoutes[T any](group *gin.RouterGroup, path string, handler *ReferenceHandler[T], auth *JWTAuthMiddleware) {
	entities := group.Group(path)
	{
		entities.GET("", handler.List)
		entities.GET("/:id", handler.Get)
		entities.POST("", auth.RequireRoleMiddleware(models.RoleStaff), handler.Create)
		entities.PUT("/:id", auth.RequireRoleMiddleware(models.RoleStaff), handler.Update)
		entities.DELETE("/:id", auth.RequireRoleMiddleware(models.RoleStaff), handler.Delete)
	}
}
