package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/services"
	"github.com/SAP-F-2025/academic-records-service/internal/utils"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

// ReferenceHandler serves the uniform CRUD surface of a flat reference
// entity. The entity-specific parts, binding the create payload and
// applying a partial update, are injected per entity below.
type ReferenceHandler[T any] struct {
	BaseHandler
	service     services.ReferenceService[T]
	validator   *validator.BusinessValidator
	name        string
	bindCreate  func(c *gin.Context, bv *validator.BusinessValidator) (*T, error)
	applyUpdate func(c *gin.Context, bv *validator.BusinessValidator, entity *T) error
}

func (h *ReferenceHandler[T]) Create(c *gin.Context) {
	entity, err := h.bindCreate(c, h.validator)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Creating reference record", "entity", h.name)

	created, err := h.service.Create(c.Request.Context(), entity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ReferenceHandler[T]) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), h.parseListParams(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReferenceHandler[T]) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

func (h *ReferenceHandler[T]) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.applyUpdate(c, h.validator, entity); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Updating reference record", "entity", h.name, "id", id)

	updated, err := h.service.Update(c.Request.Context(), entity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ReferenceHandler[T]) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting reference record", "entity", h.name, "id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.name + " deleted"})
}

// bindJSON decodes the body and runs tag validation in one step
func bindJSON[R any](c *gin.Context, bv *validator.BusinessValidator) (*R, error) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, validator.ValidationErrors{{Field: "body", Message: "invalid request body", Rule: "json"}}
	}
	if errs := bv.Validate(&req); len(errs) > 0 {
		return nil, errs
	}
	return &req, nil
}

// ===== PER-ENTITY WIRING =====

func NewCourseHandler(service services.ReferenceService[models.Course], bv *validator.BusinessValidator, logger utils.Logger) *ReferenceHandler[models.Course] {
	return &ReferenceHandler[models.Course]{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   bv,
		name:        "course",
		bindCreate: func(c *gin.Context, bv *validator.BusinessValidator) (*models.Course, error) {
			req, err := bindJSON[validator.CourseCreateRequest](c, bv)
			if err != nil {
				return nil, err
			}
			return &models.Course{Title: req.Title, Description: req.Description}, nil
		},
		applyUpdate: func(c *gin.Context, bv *validator.BusinessValidator, course *models.Course) error {
			req, err := bindJSON[validator.CourseUpdateRequest](c, bv)
			if err != nil {
				return err
			}
			if req.Title != nil {
				course.Title = *req.Title
			}
			if req.Description != nil {
				course.Description = req.Description
			}
			return nil
		},
	}
}

func NewDepartmentHandler(service services.ReferenceService[models.Department], bv *validator.BusinessValidator, logger utils.Logger) *ReferenceHandler[models.Department] {
	return &ReferenceHandler[models.Department]{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   bv,
		name:        "department",
		bindCreate: func(c *gin.Context, bv *validator.BusinessValidator) (*models.Department, error) {
			req, err := bindJSON[validator.DepartmentCreateRequest](c, bv)
			if err != nil {
				return nil, err
			}
			dept := &models.Department{Title: req.Title, IsActive: true, Description: req.Description}
			if req.IsActive != nil {
				dept.IsActive = *req.IsActive
			}
			return dept, nil
		},
		applyUpdate: func(c *gin.Context, bv *validator.BusinessValidator, dept *models.Department) error {
			req, err := bindJSON[validator.DepartmentUpdateRequest](c, bv)
			if err != nil {
				return err
			}
			if req.Title != nil {
				dept.Title = *req.Title
			}
			if req.IsActive != nil {
				dept.IsActive = *req.IsActive
			}
			if req.Description != nil {
				dept.Description = req.Description
			}
			return nil
		},
	}
}

func NewDayHandler(service services.ReferenceService[models.Day], bv *validator.BusinessValidator, logger utils.Logger) *ReferenceHandler[models.Day] {
	return &ReferenceHandler[models.Day]{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   bv,
		name:        "day",
		bindCreate: func(c *gin.Context, bv *validator.BusinessValidator) (*models.Day, error) {
			req, err := bindJSON[validator.DayCreateRequest](c, bv)
			if err != nil {
				return nil, err
			}
			return &models.Day{Title: req.Title}, nil
		},
		applyUpdate: func(c *gin.Context, bv *validator.BusinessValidator, day *models.Day) error {
			req, err := bindJSON[validator.DayUpdateRequest](c, bv)
			if err != nil {
				return err
			}
			if req.Title != nil {
				day.Title = *req.Title
			}
			return nil
		},
	}
}

func NewRoomHandler(service services.ReferenceService[models.Room], bv *validator.BusinessValidator, logger utils.Logger) *ReferenceHandler[models.Room] {
	return &ReferenceHandler[models.Room]{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   bv,
		name:        "room",
		bindCreate: func(c *gin.Context, bv *validator.BusinessValidator) (*models.Room, error) {
			req, err := bindJSON[validator.RoomCreateRequest](c, bv)
			if err != nil {
				return nil, err
			}
			return &models.Room{Title: req.Title, Capacity: req.Capacity}, nil
		},
		applyUpdate: func(c *gin.Context, bv *validator.BusinessValidator, room *models.Room) error {
			req, err := bindJSON[validator.RoomUpdateRequest](c, bv)
			if err != nil {
				return err
			}
			if req.Title != nil {
				room.Title = *req.Title
			}
			if req.Capacity != nil {
				room.Capacity = req.Capacity
			}
			return nil
		},
	}
}

func NewTableTypeHandler(service services.ReferenceService[models.TableType], bv *validator.BusinessValidator, logger utils.Logger) *ReferenceHandler[models.TableType] {
	return &ReferenceHandler[models.TableType]{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   bv,
		name:        "table type",
		bindCreate: func(c *gin.Context, bv *validator.BusinessValidator) (*models.TableType, error) {
			req, err := bindJSON[validator.TableTypeCreateRequest](c, bv)
			if err != nil {
				return nil, err
			}
			return &models.TableType{Title: req.Title}, nil
		},
		applyUpdate: func(c *gin.Context, bv *validator.BusinessValidator, tableType *models.TableType) error {
			req, err := bindJSON[validator.TableTypeUpdateRequest](c, bv)
			if err != nil {
				return err
			}
			if req.Title != nil {
				tableType.Title = *req.Title
			}
			return nil
		},
	}
}

func NewTableHandler(service services.ReferenceService[models.Table], bv *validator.BusinessValidator, logger utils.Logger) *ReferenceHandler[models.Table] {
	applyTable := func(req *validator.TableCreateRequest, table *models.Table) {
		if req.CourseID != nil {
			table.CourseID = req.CourseID
		}
		if req.TeacherID != nil {
			table.TeacherID = req.TeacherID
		}
		if req.RoomID != nil {
			table.RoomID = req.RoomID
		}
		if req.DayID != nil {
			table.DayID = req.DayID
		}
		if req.TypeID != nil {
			table.TypeID = req.TypeID
		}
		if req.StartTime != nil {
			table.StartTime = req.StartTime
		}
		if req.EndTime != nil {
			table.EndTime = req.EndTime
		}
	}

	return &ReferenceHandler[models.Table]{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   bv,
		name:        "table",
		bindCreate: func(c *gin.Context, bv *validator.BusinessValidator) (*models.Table, error) {
			req, err := bindJSON[validator.TableCreateRequest](c, bv)
			if err != nil {
				return nil, err
			}
			var table models.Table
			applyTable(req, &table)
			return &table, nil
		},
		applyUpdate: func(c *gin.Context, bv *validator.BusinessValidator, table *models.Table) error {
			req, err := bindJSON[validator.TableUpdateRequest](c, bv)
			if err != nil {
				return err
			}
			applyTable(req, table)
			return nil
		},
	}
}

func NewGroupStudentHandler(service services.ReferenceService[models.GroupStudent], bv *validator.BusinessValidator, logger utils.Logger) *ReferenceHandler[models.GroupStudent] {
	return &ReferenceHandler[models.GroupStudent]{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   bv,
		name:        "group assignment",
		bindCreate: func(c *gin.Context, bv *validator.BusinessValidator) (*models.GroupStudent, error) {
			req, err := bindJSON[validator.GroupStudentCreateRequest](c, bv)
			if err != nil {
				return nil, err
			}
			return &models.GroupStudent{TableID: req.TableID, StudentID: req.StudentID}, nil
		},
		applyUpdate: func(c *gin.Context, bv *validator.BusinessValidator, group *models.GroupStudent) error {
			req, err := bindJSON[validator.GroupStudentUpdateRequest](c, bv)
			if err != nil {
				return err
			}
			if req.TableID != nil {
				group.TableID = req.TableID
			}
			if req.StudentID != nil {
				group.StudentID = req.StudentID
			}
			return nil
		},
	}
}
