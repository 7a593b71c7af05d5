package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
)

const enrollmentSheet = "Enrollments"

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// BuildEnrollmentWorkbook renders the platform-wide enrollment roster as an
// xlsx workbook, one row per course.
func (s *reportService) BuildEnrollmentWorkbook(ctx context.Context) ([]byte, error) {
	containers, err := s.repo.Course().ListWithDetails(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	rows := BuildEnrollmentRows(containers)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(enrollmentSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Teacher", "Teacher Email", "Course", "Active", "Created", "Students"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(enrollmentSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.TeacherName,
			row.TeacherEmail,
			row.CourseName,
			row.IsActive,
			row.CreatedAt.Format("2006-01-02 15:04:05"),
			row.StudentCount,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(enrollmentSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Enrollment workbook built", "rows", len(rows))
	return buf.Bytes(), nil
}

// BuildEnrollmentRows flattens course containers into report rows.
func BuildEnrollmentRows(containers []*models.Course) []models.EnrollmentReportRow {
	var rows []models.EnrollmentReportRow
	for _, container := range containers {
		teacherName := ""
		teacherEmail := ""
		if container.Teacher != nil {
			teacherName = container.Teacher.Name
			teacherEmail = container.Teacher.Email
		}
		for _, child := range container.Courses {
			rows = append(rows, models.EnrollmentReportRow{
				TeacherName:  teacherName,
				TeacherEmail: teacherEmail,
				CourseName:   child.Name,
				IsActive:     child.IsActive,
				CreatedAt:    child.CreatedAt,
				StudentCount: len(child.Students),
			})
		}
	}
	return rows
}
