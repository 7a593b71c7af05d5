package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/bekhruzRakhmonov/educative-platform/internal/events"
	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
)

func TestEnrollmentEventService_PublishEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockPublisher := events.NewMockEventPublisher(logger)
	service := NewEnrollmentEventService(mockPublisher, logger)

	ctx := context.Background()
	student := &models.User{ID: "s1", Name: "Sam", Email: "sam@example.com", Role: models.RoleStudent}

	t.Run("course joined event carries ids", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.PublishCourseJoined(ctx, student, 42)

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}

		event := published[0]
		if event.Type != events.TypeCourseJoined {
			t.Errorf("Type = %s, want %s", event.Type, events.TypeCourseJoined)
		}
		if event.ID == "" {
			t.Error("event ID should not be empty")
		}
		if event.Source != "educative-platform" {
			t.Errorf("Source = %q", event.Source)
		}

		data, ok := event.Data.(map[string]interface{})
		if !ok {
			t.Fatalf("Data has type %T", event.Data)
		}
		if data["student_id"] != "s1" {
			t.Errorf("student_id = %v", data["student_id"])
		}
	})

	t.Run("nil publisher is a no-op", func(t *testing.T) {
		quiet := NewEnrollmentEventService(nil, logger)
		quiet.PublishUserRegistered(ctx, student)
		quiet.PublishCourseLeft(ctx, student, 42)
	})

	t.Run("approval event carries both flags", func(t *testing.T) {
		mockPublisher.ClearEvents()
		actor := &models.User{ID: "admin", IsStaff: true}
		teacher := &models.User{ID: "t1", Role: models.RoleTeacher, IsApproved: true}

		service.PublishApprovalUpdated(ctx, actor, teacher)

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		data := published[0].Data.(map[string]interface{})
		if data["is_approved"] != true || data["is_rejected"] != false {
			t.Errorf("unexpected flags in payload: %v", data)
		}
	})
}
