package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/student-report-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/student-report-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/student-report-api/internal/domain"
	"github.com/vietanh2810/student-report-api/internal/service"
)

type StudentService interface {
	GetAllStudents(ctx context.Context) ([]domain.EnrichedStudent, error)
	GetStudentByRoll(ctx context.Context, roll int) (domain.EnrichedStudent, error)
	GetStudentsByGrade(ctx context.Context, grade domain.Grade) ([]domain.EnrichedStudent, error)
	GetBranchSummary(ctx context.Context) (domain.BranchSummary, error)
	GetBranchRolls(ctx context.Context) (map[string][]int, error)
	GetToppers(ctx context.Context) (domain.Toppers, error)
	GetTopStudents(ctx context.Context, n int) ([]domain.EnrichedStudent, error)
	GetStudentsAbove(ctx context.Context, cutoff float64) ([]domain.EnrichedStudent, error)
	GetStatistics(ctx context.Context) (domain.Statistics, error)
	GetReport(ctx context.Context) (domain.Report, error)
	GetBranchAverages(ctx context.Context) ([]domain.BranchAverage, error)
	GetSubjectAverages(ctx context.Context) ([]domain.SubjectAverage, error)
}

type StudentHandler struct {
	svc StudentService
}

func NewStudentHandler(svc StudentService) *StudentHandler {
	return &StudentHandler{
		svc: svc,
	}
}

// renderQueryErr maps an error of a roster-wide query to its response.
func renderQueryErr(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrNoData) {
		response.RenderErr(ctx, response.ErrNoData(err))
		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(err))
}

// HandleGetAllStudents godoc
// @Summary      List all students
// @Description  Every student in roster order with total marks, percentage and grade
// @Tags         students
// @Produce      json
// @Success      200  {array}   domain.EnrichedStudent
// @Failure      500  {object}  response.Err
// @Router       /all-students [get]
func (h *StudentHandler) HandleGetAllStudents(ctx *gin.Context) {
	students, err := h.svc.GetAllStudents(ctx.Request.Context())
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetAllStudents -> h.svc.GetAllStudents -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleGetStudent godoc
// @Summary      Get a student by roll number
// @Tags         students
// @Produce      json
// @Param        roll  path      int  true  "roll number"
// @Success      200   {object}  domain.EnrichedStudent
// @Failure      400   {object}  response.Err
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /student/{roll} [get]
func (h *StudentHandler) HandleGetStudent(ctx *gin.Context) {
	var req request.StudentByRollRequest
	if err := ctx.ShouldBindUri(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid roll: %w", err)))
		return
	}

	student, err := h.svc.GetStudentByRoll(ctx.Request.Context(), req.Roll)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("student", "roll", req.Roll))
			return
		}

		err = fmt.Errorf("HandleGetStudent -> h.svc.GetStudentByRoll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleGetStudentsByGrade godoc
// @Summary      List students with a grade
// @Description  The grade letter is matched case-insensitively. An unknown letter yields an empty list.
// @Tags         students
// @Produce      json
// @Param        grade  path      string  true  "grade letter"  example(A)
// @Success      200    {array}   domain.EnrichedStudent
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /students-by-grade/{grade} [get]
func (h *StudentHandler) HandleGetStudentsByGrade(ctx *gin.Context) {
	var req request.StudentsByGradeRequest
	if err := ctx.ShouldBindUri(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	students, err := h.svc.GetStudentsByGrade(ctx.Request.Context(), domain.ParseGrade(req.Grade))
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetStudentsByGrade -> h.svc.GetStudentsByGrade -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleGetBranches godoc
// @Summary      List branches with their student counts
// @Tags         branches
// @Produce      json
// @Success      200  {object}  domain.BranchSummary
// @Failure      500  {object}  response.Err
// @Router       /branches [get]
func (h *StudentHandler) HandleGetBranches(ctx *gin.Context) {
	summary, err := h.svc.GetBranchSummary(ctx.Request.Context())
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetBranches -> h.svc.GetBranchSummary -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleGetBranchWiseStudents godoc
// @Summary      Roll numbers grouped by branch
// @Tags         branches
// @Produce      json
// @Success      200  {object}  map[string][]int
// @Failure      500  {object}  response.Err
// @Router       /branch-wise-students [get]
func (h *StudentHandler) HandleGetBranchWiseStudents(ctx *gin.Context) {
	rolls, err := h.svc.GetBranchRolls(ctx.Request.Context())
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetBranchWiseStudents -> h.svc.GetBranchRolls -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, rolls)
}

// HandleGetToppers godoc
// @Summary      Overall and branch toppers
// @Description  Ties go to the student listed first in the roster.
// @Tags         rankings
// @Produce      json
// @Success      200  {object}  domain.Toppers
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /toppers [get]
func (h *StudentHandler) HandleGetToppers(ctx *gin.Context) {
	toppers, err := h.svc.GetToppers(ctx.Request.Context())
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetToppers -> h.svc.GetToppers -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, toppers)
}

// HandleGetTopStudents godoc
// @Summary      Top N students by percentage
// @Tags         rankings
// @Produce      json
// @Param        count  path      int  true  "number of students"
// @Success      200    {array}   domain.EnrichedStudent
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /top-students/{count} [get]
func (h *StudentHandler) HandleGetTopStudents(ctx *gin.Context) {
	var req request.TopStudentsRequest
	if err := ctx.ShouldBindUri(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid count: %w", err)))
		return
	}

	students, err := h.svc.GetTopStudents(ctx.Request.Context(), req.Count)
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetTopStudents -> h.svc.GetTopStudents -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleGetStudentsAbove godoc
// @Summary      Students at or above a percentage
// @Tags         rankings
// @Produce      json
// @Param        percentage  path      number  true  "inclusive cutoff"
// @Success      200         {array}   domain.EnrichedStudent
// @Failure      400         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /students-above-percentage/{percentage} [get]
func (h *StudentHandler) HandleGetStudentsAbove(ctx *gin.Context) {
	var req request.StudentsAboveRequest
	if err := ctx.ShouldBindUri(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid percentage: %w", err)))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	students, err := h.svc.GetStudentsAbove(ctx.Request.Context(), req.Percentage)
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetStudentsAbove -> h.svc.GetStudentsAbove -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleGetStatistics godoc
// @Summary      Roster statistics
// @Tags         reports
// @Produce      json
// @Success      200  {object}  domain.Statistics
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /statistics [get]
func (h *StudentHandler) HandleGetStatistics(ctx *gin.Context) {
	stats, err := h.svc.GetStatistics(ctx.Request.Context())
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetStatistics -> h.svc.GetStatistics -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleGetReport godoc
// @Summary      Summary report
// @Description  Student count, branch list and topper names keyed by "overall" and branch code
// @Tags         reports
// @Produce      json
// @Success      200  {object}  domain.Report
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /report [get]
func (h *StudentHandler) HandleGetReport(ctx *gin.Context) {
	report, err := h.svc.GetReport(ctx.Request.Context())
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetReport -> h.svc.GetReport -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleGetBranchAverages godoc
// @Summary      Mean percentage per branch, best first
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.BranchAverage
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /branch-averages [get]
func (h *StudentHandler) HandleGetBranchAverages(ctx *gin.Context) {
	averages, err := h.svc.GetBranchAverages(ctx.Request.Context())
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetBranchAverages -> h.svc.GetBranchAverages -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, averages)
}

// HandleGetSubjectAverages godoc
// @Summary      Mean marks per subject
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.SubjectAverage
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /subject-averages [get]
func (h *StudentHandler) HandleGetSubjectAverages(ctx *gin.Context) {
	averages, err := h.svc.GetSubjectAverages(ctx.Request.Context())
	if err != nil {
		renderQueryErr(ctx, fmt.Errorf("HandleGetSubjectAverages -> h.svc.GetSubjectAverages -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, averages)
}
