package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/studentdir/internal/app/models"
	"github.com/ekurt/studentdir/internal/app/models/dto"
	"github.com/ekurt/studentdir/internal/app/services"
	"github.com/ekurt/studentdir/internal/middleware"
)

// StudentController handles the /students resource.
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController.
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// ListStudents handles GET /students. With a search query parameter it
// returns the matching subset, otherwise the full directory.
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var (
		students []*models.Student
		err      error
	)

	if query, ok := ctx.GetQuery("search"); ok && query != "" {
		students, err = c.studentService.Search(ctx.Request.Context(), query)
	} else {
		students, err = c.studentService.GetAll(ctx.Request.Context())
	}
	if err != nil {
		middleware.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// GetStudentByID handles GET /students/:id.
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.studentService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// CreateStudent handles POST /students. firstName, lastName and email are
// required; everything else is stored as given.
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("firstName, lastName and email are required"))
		return
	}

	student := &models.Student{
		ID:             req.ID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Program:        req.Program,
		Year:           req.Year,
		Status:         req.Status,
		EnrollmentDate: req.EnrollmentDate,
		Avatar:         req.Avatar,
	}

	created, err := c.studentService.Create(ctx.Request.Context(), student)
	if err != nil {
		middleware.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// UpdateStudent handles PUT /students/:id. Only fields present in the body are
// merged over the stored record; the path id always wins over a body id.
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid student data"))
		return
	}

	updated, err := c.studentService.Update(ctx.Request.Context(), ctx.Param("id"), req.Fields())
	if err != nil {
		middleware.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteStudent handles DELETE /students/:id.
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteStudentResponse{
		Success: true,
		ID:      id,
	})
}
