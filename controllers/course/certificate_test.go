package controllers

import (
	courseModels "academy/models/course"
	"academy/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCertificateByNumber(t *testing.T) {
	db := setupTestDB(t)

	number := utils.GenerateCertificateNumber(42)
	cert := courseModels.Certificate{
		UserID:            42,
		CourseID:          7,
		CertificateNumber: number,
		VerificationHash:  utils.CertificateHash(number, 42, 7),
		IssuedAt:          time.Now(),
	}
	require.NoError(t, db.Create(&cert).Error)

	valid, found, msg := VerifyCertificateByNumber(db, number)
	assert.True(t, valid)
	require.NotNil(t, found)
	assert.Equal(t, cert.ID, found.ID)
	assert.Equal(t, "Certificate is valid and authentic", msg)
}

func TestVerifyCertificateRejectsTamperedOwner(t *testing.T) {
	db := setupTestDB(t)

	number := utils.GenerateCertificateNumber(42)
	cert := courseModels.Certificate{
		UserID:            42,
		CourseID:          7,
		CertificateNumber: number,
		VerificationHash:  utils.CertificateHash(number, 42, 7),
		IssuedAt:          time.Now(),
	}
	require.NoError(t, db.Create(&cert).Error)

	// Reassigning the certificate to another user invalidates the hash
	require.NoError(t, db.Model(&cert).Update("user_id", 43).Error)

	valid, found, msg := VerifyCertificateByNumber(db, number)
	assert.False(t, valid)
	assert.Nil(t, found)
	assert.Equal(t, "Certificate verification failed - invalid hash", msg)
}

func TestVerifyCertificateRejectsTamperedCourse(t *testing.T) {
	db := setupTestDB(t)

	number := utils.GenerateCertificateNumber(42)
	cert := courseModels.Certificate{
		UserID:            42,
		CourseID:          7,
		CertificateNumber: number,
		VerificationHash:  utils.CertificateHash(number, 42, 7),
		IssuedAt:          time.Now(),
	}
	require.NoError(t, db.Create(&cert).Error)

	require.NoError(t, db.Model(&cert).Update("course_id", 8).Error)

	valid, _, _ := VerifyCertificateByNumber(db, number)
	assert.False(t, valid)
}

func TestVerifyCertificateUnknownNumber(t *testing.T) {
	db := setupTestDB(t)

	valid, found, msg := VerifyCertificateByNumber(db, "VP-0000000000000-0042")
	assert.False(t, valid)
	assert.Nil(t, found)
	assert.Equal(t, "Certificate not found", msg)
}

func TestVerifyCertificateInputGuards(t *testing.T) {
	db := setupTestDB(t)

	valid, _, msg := VerifyCertificateByNumber(db, "")
	assert.False(t, valid)
	assert.Equal(t, "Valid certificate number is required", msg)

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	valid, _, _ = VerifyCertificateByNumber(db, string(long))
	assert.False(t, valid)
}
