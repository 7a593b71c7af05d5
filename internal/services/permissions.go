package services

import "github.com/bekhruzRakhmonov/educative-platform/internal/models"

// CanCreateCourse reports whether the user may create courses. The reason
// distinguishes a wrong role from a teacher still waiting on review.
func CanCreateCourse(user *models.User) (bool, string) {
	if user == nil {
		return false, "not authenticated"
	}
	if user.Role != models.RoleTeacher {
		return false, "not a teacher"
	}
	if !user.IsApproved {
		return false, "not yet approved by Admin"
	}
	return true, ""
}

// CanModerateUsers reports whether the user may review and approve accounts.
func CanModerateUsers(user *models.User) bool {
	return user != nil && user.IsStaff
}

// CanViewDashboard reports whether the user may load the course overview.
// Any authenticated, active account qualifies; the projection is shaped per
// role elsewhere.
func CanViewDashboard(user *models.User) bool {
	return user != nil && user.IsActive
}

// CanJoinCourses reports whether the user may enroll in courses.
func CanJoinCourses(user *models.User) (bool, string) {
	if user == nil {
		return false, "not authenticated"
	}
	if user.Role != models.RoleStudent {
		return false, "not a student"
	}
	return true, ""
}
