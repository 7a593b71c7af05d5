package models

import (
	"time"

	"gorm.io/datatypes"
)

// Course is the per-teacher container aggregate. Each teacher owns exactly
// one; it is created lazily the first time that teacher creates a course.
type Course struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	TeacherID string `json:"teacher_id" gorm:"uniqueIndex;not null;size:36"`
	Teacher   *User  `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	Courses []*ChildCourse `json:"courses,omitempty" gorm:"many2many:course_children"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

// ChildCourse is an individual enrollable course with a student roster.
type ChildCourse struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:255"`

	Students []*User `json:"students,omitempty" gorm:"many2many:child_course_students"`

	// Containers is the back-reference through course_children; in practice
	// a course belongs to exactly one teacher's container.
	Containers []*Course `json:"-" gorm:"many2many:course_children"`

	// Free-form course metadata supplied at creation (schedule, room, ...).
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ChildCourse) TableName() string {
	return "child_courses"
}
