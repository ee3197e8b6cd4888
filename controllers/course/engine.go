package controllers

import (
	"academy/models"
	courseModels "academy/models/course"
	"academy/utils"
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment and progress errors surfaced to handlers
var (
	ErrAlreadyEnrolled   = errors.New("Already enrolled in this course")
	ErrCourseNotFound    = errors.New("Course not found")
	ErrCourseUnavailable = errors.New("Course is not available for enrollment")
	ErrLessonNotFound    = errors.New("Lesson not found")
	ErrNotEnrolled       = errors.New("User not enrolled in this course")
	ErrNotCompleted      = errors.New("Course must be 100% completed to receive certificate")
)

func activityData(fields map[string]interface{}) datatypes.JSON {
	raw, _ := json.Marshal(fields)
	return datatypes.JSON(raw)
}

// EnrollUser enrolls a user in a published course. One transaction inserts
// the enrollment, a zeroed progress projection and an activity log row;
// an existing enrollment or an unpublished course aborts the whole write.
func EnrollUser(db *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var existing courseModels.Enrollment
	if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		tx.Rollback()
		return nil, ErrAlreadyEnrolled
	}

	var crs courseModels.Course
	if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		tx.Rollback()
		return nil, ErrCourseNotFound
	}
	if crs.Status != courseModels.StatusPublished {
		tx.Rollback()
		return nil, ErrCourseUnavailable
	}

	var totalLessons int64
	tx.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalLessons)

	enrollment := courseModels.Enrollment{
		UserID:    userID,
		CourseID:  courseID,
		Status:    courseModels.EnrollmentActive,
		StartedAt: time.Now(),
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	progress := courseModels.CourseProgress{
		UserID:       userID,
		CourseID:     courseID,
		TotalLessons: int(totalLessons),
	}
	if err := tx.Create(&progress).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Create(&models.ActivityLog{
		UserID:  userID,
		Type:    models.ActivityCourseProgress,
		Message: "Enrolled in course: " + crs.Title,
		Data:    activityData(map[string]interface{}{"courseId": courseID, "action": "enrolled"}),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// CompleteLesson marks a lesson completed for a user and recomputes the
// course progress projection. Completing an already-completed lesson is a
// no-op upsert.
func CompleteLesson(db *gorm.DB, userID, lessonID uint) (*courseModels.CourseProgress, error) {
	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", lessonID, false, true).First(&lesson).Error; err != nil {
		return nil, ErrLessonNotFound
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, lesson.CourseID, false).First(&enrollment).Error; err != nil {
		return nil, ErrNotEnrolled
	}

	now := time.Now()
	var lp courseModels.LessonProgress
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&lp).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		lp = courseModels.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			CourseID:    lesson.CourseID,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := db.Create(&lp).Error; err != nil {
			return nil, err
		}
	} else if !lp.Completed {
		lp.Completed = true
		lp.CompletedAt = &now
		if err := db.Save(&lp).Error; err != nil {
			return nil, err
		}
	}

	return recomputeCourseProgress(db, userID, lesson.CourseID)
}

// recomputeCourseProgress recounts completed lessons against the course's
// published lesson set and upserts the cached projection. Reaching full
// completion flips the enrollment to COMPLETED and issues the certificate.
func recomputeCourseProgress(db *gorm.DB, userID, courseID uint) (*courseModels.CourseProgress, error) {
	lessonIDs := db.Model(&courseModels.Lesson{}).
		Select("id").
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true)

	var totalLessons int64
	db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalLessons)

	var completedLessons int64
	db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND completed = ? AND is_deleted = ? AND lesson_id IN (?)", userID, true, false, lessonIDs).
		Count(&completedLessons)

	percent := 0
	if totalLessons > 0 {
		percent = int(math.Round(float64(completedLessons) / float64(totalLessons) * 100))
	}
	// 100 is reserved for full completion; a nearly-done course must not
	// round up to it.
	if percent == 100 && completedLessons < totalLessons {
		percent = 99
	}

	var progress courseModels.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = courseModels.CourseProgress{UserID: userID, CourseID: courseID}
	}
	progress.CompletedLessons = int(completedLessons)
	progress.TotalLessons = int(totalLessons)
	progress.ProgressPercent = percent
	if err := db.Save(&progress).Error; err != nil {
		return nil, err
	}

	if totalLessons > 0 && completedLessons == totalLessons {
		if err := completeEnrollment(db, userID, courseID); err != nil {
			return nil, err
		}
	}

	return &progress, nil
}

// completeEnrollment flips the enrollment to COMPLETED and issues the
// completion certificate. Safe to call when the enrollment is already
// completed.
func completeEnrollment(db *gorm.DB, userID, courseID uint) error {
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return ErrNotEnrolled
	}

	if enrollment.Status != courseModels.EnrollmentCompleted {
		now := time.Now()
		enrollment.Status = courseModels.EnrollmentCompleted
		enrollment.CompletedAt = &now
		if err := db.Save(&enrollment).Error; err != nil {
			return err
		}

		var crs courseModels.Course
		db.Where("id = ?", courseID).First(&crs)
		db.Create(&models.ActivityLog{
			UserID:  userID,
			Type:    models.ActivityCourseProgress,
			Message: "Completed course: " + crs.Title,
			Data:    activityData(map[string]interface{}{"courseId": courseID, "action": "completed"}),
		})
	}

	_, err := issueCertificate(db, userID, courseID)
	return err
}

// issueCertificate mints a hash-verified certificate for a completed
// course. It re-verifies 100% completion even though callers are expected
// to have checked, and short-circuits when a certificate already exists.
func issueCertificate(db *gorm.DB, userID, courseID uint) (*courseModels.Certificate, error) {
	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return nil, ErrNotCompleted
	}
	if progress.TotalLessons == 0 || progress.CompletedLessons != progress.TotalLessons {
		return nil, ErrNotCompleted
	}

	var existing courseModels.Certificate
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return &existing, nil
	}

	number := utils.GenerateCertificateNumber(userID)
	cert := courseModels.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: number,
		VerificationHash:  utils.CertificateHash(number, userID, courseID),
		IssuedAt:          time.Now(),
	}
	if err := db.Create(&cert).Error; err != nil {
		return nil, err
	}

	var crs courseModels.Course
	db.Where("id = ?", courseID).First(&crs)
	db.Create(&models.ActivityLog{
		UserID:  userID,
		Type:    models.ActivityCertificateIssued,
		Message: "Certificate issued for course: " + crs.Title,
		Data:    activityData(map[string]interface{}{"courseId": courseID, "certificateNumber": number}),
	})

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err == nil {
		go func(email, name, courseTitle, certNumber string) {
			if err := utils.SendCertificateEmail(email, name, courseTitle, certNumber); err != nil {
				log.Printf("Error sending certificate email: %v", err)
			}
		}(user.Email, user.Name, crs.Title, number)
	}

	return &cert, nil
}

// VerifyCertificateByNumber looks up a certificate and recomputes its
// verification hash. A missing row or a hash mismatch reports invalid.
func VerifyCertificateByNumber(db *gorm.DB, certificateNumber string) (bool, *courseModels.Certificate, string) {
	if certificateNumber == "" || len(certificateNumber) > 64 {
		return false, nil, "Valid certificate number is required"
	}

	var cert courseModels.Certificate
	if err := db.Where("certificate_number = ? AND is_deleted = ?", certificateNumber, false).First(&cert).Error; err != nil {
		return false, nil, "Certificate not found"
	}

	expected := utils.CertificateHash(cert.CertificateNumber, cert.UserID, cert.CourseID)
	if cert.VerificationHash != expected {
		return false, nil, "Certificate verification failed - invalid hash"
	}

	return true, &cert, "Certificate is valid and authentic"
}
