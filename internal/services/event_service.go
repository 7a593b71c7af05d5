package services

import (
	"context"
	"log/slog"

	"github.com/bekhruzRakhmonov/educative-platform/internal/events"
	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
)

type enrollmentEventService struct {
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewEnrollmentEventService(publisher events.EventPublisher, logger *slog.Logger) EnrollmentEventService {
	return &enrollmentEventService{publisher: publisher, logger: logger}
}

func (s *enrollmentEventService) PublishUserRegistered(ctx context.Context, user *models.User) {
	s.publish(ctx, events.NewEvent(events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"status":  user.Role,
	}))
}

func (s *enrollmentEventService) PublishApprovalUpdated(ctx context.Context, actor *models.User, user *models.User) {
	s.publish(ctx, events.NewEvent(events.TypeApprovalUpdated, map[string]interface{}{
		"actor_id":    actor.ID,
		"user_id":     user.ID,
		"is_approved": user.IsApproved,
		"is_rejected": user.IsRejected,
	}))
}

func (s *enrollmentEventService) PublishCourseCreated(ctx context.Context, teacher *models.User, course *models.ChildCourse) {
	s.publish(ctx, events.NewEvent(events.TypeCourseCreated, map[string]interface{}{
		"course_id":  course.ID,
		"name":       course.Name,
		"teacher_id": teacher.ID,
	}))
}

func (s *enrollmentEventService) PublishCourseJoined(ctx context.Context, student *models.User, courseID uint) {
	s.publish(ctx, events.NewEvent(events.TypeCourseJoined, map[string]interface{}{
		"course_id":  courseID,
		"student_id": student.ID,
	}))
}

func (s *enrollmentEventService) PublishCourseLeft(ctx context.Context, student *models.User, courseID uint) {
	s.publish(ctx, events.NewEvent(events.TypeCourseLeft, map[string]interface{}{
		"course_id":  courseID,
		"student_id": student.ID,
	}))
}

// publish is best effort. A broker outage must not fail the request that
// triggered the event.
func (s *enrollmentEventService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "event_id", event.ID, "error", err)
	}
}
