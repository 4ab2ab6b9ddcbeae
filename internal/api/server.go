package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vietanh2810/student-report-api/docs"
	v1 "github.com/vietanh2810/student-report-api/internal/api/handler/v1"
	"github.com/vietanh2810/student-report-api/internal/api/middleware"
	"github.com/vietanh2810/student-report-api/internal/chart"
	"github.com/vietanh2810/student-report-api/internal/config"
	"github.com/vietanh2810/student-report-api/internal/repository"
	"github.com/vietanh2810/student-report-api/internal/repository/dao"
	"github.com/vietanh2810/student-report-api/internal/service"
)

const basePath = "/api"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

// NewServer wires the handlers over a frozen roster. roster is copied and
// never modified afterwards.
func NewServer(conf *config.AppConfig, roster []dao.Student) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	repo := repository.NewStudentRepository(dao.NewStudentDAO(roster))
	studentHandler := s.initStudentHandler(repo)
	chartHandler, err := s.initChartHandler(repo)
	if err != nil {
		return nil, fmt.Errorf("s.initChartHandler -> %w", err)
	}
	s.MountHandlers(studentHandler, chartHandler)

	return s, nil
}

func (s *Server) initStudentHandler(repo *repository.StudentRepository) *v1.StudentHandler {
	svc := service.NewStudentService(repo)
	handler := v1.NewStudentHandler(svc)

	return handler
}

func (s *Server) initChartHandler(repo *repository.StudentRepository) (*v1.ChartHandler, error) {
	renderer, err := chart.NewRenderer(s.Config.Chart)
	if err != nil {
		return nil, fmt.Errorf("chart.NewRenderer -> %w", err)
	}
	svc := service.NewChartService(repo, renderer)
	handler := v1.NewChartHandler(svc)

	return handler, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(studentHandler *v1.StudentHandler, chartHandler *v1.ChartHandler) {
	students := s.Router.Group(basePath)
	{
		students.GET("/all-students", studentHandler.HandleGetAllStudents)
		students.GET("/student/:roll", studentHandler.HandleGetStudent)
		students.GET("/students-by-grade/:grade", studentHandler.HandleGetStudentsByGrade)
		students.GET("/top-students/:count", studentHandler.HandleGetTopStudents)
		students.GET("/students-above-percentage/:percentage", studentHandler.HandleGetStudentsAbove)
		students.GET("/toppers", studentHandler.HandleGetToppers)
	}

	branches := s.Router.Group(basePath)
	{
		branches.GET("/branches", studentHandler.HandleGetBranches)
		branches.GET("/branch-wise-students", studentHandler.HandleGetBranchWiseStudents)
		branches.GET("/branch-averages", studentHandler.HandleGetBranchAverages)
	}

	reports := s.Router.Group(basePath)
	{
		reports.GET("/statistics", studentHandler.HandleGetStatistics)
		reports.GET("/report", studentHandler.HandleGetReport)
		reports.GET("/subject-averages", studentHandler.HandleGetSubjectAverages)
		reports.GET("/generate-graphs", chartHandler.HandleGenerateGraphs)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Student Performance Report API"
	docs.SwaggerInfo.Description = "Read-only queries, statistics and charts over a student roster."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
