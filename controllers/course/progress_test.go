package controllers

import (
	"academy/config"
	"academy/database"
	"academy/models"
	courseModels "academy/models/course"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		CertificateSecret: "test-cert-secret",
		SaltRound:         4,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Name:        "Test Student",
		Email:       email,
		Password:    "hashed",
		Roles:       models.RoleStudent,
		DefaultRole: models.RoleStudent,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourseWithLessons(t *testing.T, db *gorm.DB, slug string, lessonCount int) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()
	crs := courseModels.Course{
		Title:  "Go From Scratch",
		Slug:   slug,
		Status: courseModels.StatusPublished,
	}
	require.NoError(t, db.Create(&crs).Error)

	module := courseModels.Module{CourseID: crs.ID, Title: "Basics", OrderIndex: 1}
	require.NoError(t, db.Create(&module).Error)

	lessons := make([]courseModels.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := courseModels.Lesson{
			CourseID:    crs.ID,
			ModuleID:    module.ID,
			Title:       fmt.Sprintf("Lesson %d", i+1),
			Slug:        fmt.Sprintf("%s-lesson-%d", slug, i+1),
			OrderIndex:  i + 1,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return crs, lessons
}

func TestEnrollUserCreatesProgressProjection(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "student@example.com")
	crs, _ := seedCourseWithLessons(t, db, "go-from-scratch", 4)

	enrollment, err := EnrollUser(db, user.ID, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)

	var progress courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&progress).Error)
	assert.Equal(t, 4, progress.TotalLessons)
	assert.Equal(t, 0, progress.CompletedLessons)
	assert.Equal(t, 0, progress.ProgressPercent)
}

func TestEnrollUserRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "student@example.com")
	crs, _ := seedCourseWithLessons(t, db, "go-from-scratch", 2)

	_, err := EnrollUser(db, user.ID, crs.ID)
	require.NoError(t, err)

	_, err = EnrollUser(db, user.ID, crs.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", user.ID, crs.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollUserRejectsUnpublishedCourse(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "student@example.com")

	crs := courseModels.Course{Title: "Draft Course", Slug: "draft-course", Status: courseModels.StatusDraft}
	require.NoError(t, db.Create(&crs).Error)

	_, err := EnrollUser(db, user.ID, crs.ID)
	assert.ErrorIs(t, err, ErrCourseUnavailable)
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "student@example.com")
	_, lessons := seedCourseWithLessons(t, db, "go-from-scratch", 2)

	_, err := CompleteLesson(db, user.ID, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	_, err = CompleteLesson(db, user.ID, 9999)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestProgressReachesCompletionAndIssuesCertificate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "student@example.com")
	crs, lessons := seedCourseWithLessons(t, db, "go-from-scratch", 4)

	_, err := EnrollUser(db, user.ID, crs.ID)
	require.NoError(t, err)

	// Three of four lessons done: 75%, still active, no certificate
	for _, lesson := range lessons[:3] {
		_, err := CompleteLesson(db, user.ID, lesson.ID)
		require.NoError(t, err)
	}

	var progress courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&progress).Error)
	assert.Equal(t, 3, progress.CompletedLessons)
	assert.Equal(t, 75, progress.ProgressPercent)

	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ? AND course_id = ?", user.ID, crs.ID).Count(&certCount)
	assert.Equal(t, int64(0), certCount)

	// Final lesson completes the course and mints exactly one certificate
	_, err = CompleteLesson(db, user.ID, lessons[3].ID)
	require.NoError(t, err)

	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&progress).Error)
	assert.Equal(t, 100, progress.ProgressPercent)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	assert.NotNil(t, enrollment.CompletedAt)

	var certs []courseModels.Certificate
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).Find(&certs).Error)
	require.Len(t, certs, 1)

	valid, _, msg := VerifyCertificateByNumber(db, certs[0].CertificateNumber)
	assert.True(t, valid, msg)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "student@example.com")
	crs, lessons := seedCourseWithLessons(t, db, "go-from-scratch", 2)

	_, err := EnrollUser(db, user.ID, crs.ID)
	require.NoError(t, err)

	_, err = CompleteLesson(db, user.ID, lessons[0].ID)
	require.NoError(t, err)
	progress, err := CompleteLesson(db, user.ID, lessons[0].ID)
	require.NoError(t, err)

	assert.Equal(t, 1, progress.CompletedLessons)
	assert.Equal(t, 50, progress.ProgressPercent)
}

func TestProgressPercentNeverRoundsUpToFull(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "student@example.com")
	crs, lessons := seedCourseWithLessons(t, db, "big-course", 201)

	_, err := EnrollUser(db, user.ID, crs.ID)
	require.NoError(t, err)

	// 200 of 201 rounds to 100 but must be reported as 99
	for _, lesson := range lessons[:200] {
		_, err := CompleteLesson(db, user.ID, lesson.ID)
		require.NoError(t, err)
	}

	var progress courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&progress).Error)
	assert.Equal(t, 99, progress.ProgressPercent)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)

	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Equal(t, int64(0), certCount)
}

func TestRecomputeAfterLessonSetGrows(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "student@example.com")
	crs, lessons := seedCourseWithLessons(t, db, "go-from-scratch", 2)

	_, err := EnrollUser(db, user.ID, crs.ID)
	require.NoError(t, err)

	for _, lesson := range lessons {
		_, err := CompleteLesson(db, user.ID, lesson.ID)
		require.NoError(t, err)
	}

	// Publishing a new lesson dilutes completion below 100%
	extra := courseModels.Lesson{
		CourseID:    crs.ID,
		ModuleID:    lessons[0].ModuleID,
		Title:       "Late Addition",
		Slug:        "late-addition",
		OrderIndex:  3,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&extra).Error)

	progress, err := recomputeCourseProgress(db, user.ID, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.TotalLessons)
	assert.Equal(t, 2, progress.CompletedLessons)
	assert.Equal(t, 67, progress.ProgressPercent)
}
