package utils

import (
	"academy/config"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateCertificateNumber mints a unique certificate number of the form
// VP-{unix-millis}-{last 4 digits of the user id}
func GenerateCertificateNumber(userID uint) string {
	return fmt.Sprintf("VP-%d-%04d", time.Now().UnixMilli(), userID%10000)
}

// CertificateHash computes the verification hash for a certificate. The
// hash covers the certificate number, user id, course id and the server
// secret, so altering any of them after issuance invalidates the
// certificate.
func CertificateHash(certificateNumber string, userID, courseID uint) string {
	data := fmt.Sprintf("%s-%d-%d-%s", certificateNumber, userID, courseID, config.AppConfig.CertificateSecret)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
