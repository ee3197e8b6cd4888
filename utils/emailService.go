package utils

import (
	"academy/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email. SendGrid is used when an API key is
// configured, otherwise plain SMTP. Returns nil without sending when no
// sender is configured so business flows never fail on missing email setup.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.EmailSender == "" {
		return nil
	}

	if config.AppConfig.SendGridAPIKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendGrid(to []string, subject, htmlBody string) error {
	from := mail.NewEmail("Pro Academy", config.AppConfig.EmailSender)
	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject

	p := mail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/html", htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email, code: %d", resp.StatusCode)
	}
	return nil
}

func sendViaSMTP(to []string, subject, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Pro Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
			<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
				<h2 style="color: #333333; text-align: center;">%s</h2>
				%s
				<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">Pro Academy Team</p>
			</div>
		</body>
	</html>
	`, title, bodyContent)
}

// SendEnrollmentEmail sends an email notification when a user enrolls in a course
func SendEnrollmentEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">Congratulations! You have successfully enrolled in:</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
		<p style="font-size: 14px; color: #666666;">You can now access all the course content and start learning. Track your progress and complete all lessons to earn your certificate.</p>
	`, userName, courseName)

	return SendEmail([]string{email}, "Course Enrollment Confirmation - Pro Academy", emailTemplate("Enrollment Successful!", body))
}

// SendCertificateEmail sends certificate notification email
func SendCertificateEmail(email, userName, courseName, certificateNumber string) error {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">Congratulations on completing the course:</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
		<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
			<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Number:</p>
			<h2 style="color: #2196F3; margin: 0;">%s</h2>
		</div>
		<p style="font-size: 14px; color: #666666;">You can use this certificate number for verification at %s/verify.</p>
	`, userName, courseName, certificateNumber, config.AppConfig.SiteURL)

	return SendEmail([]string{email}, "Course Completion Certificate - Pro Academy", emailTemplate("Certificate of Completion", body))
}

// SendUnlockDecisionEmail notifies the buyer about a payment-verification decision
func SendUnlockDecisionEmail(email, userName, itemTitle, status, notes string) error {
	headline := "Payment Verified!"
	detail := "Your payment has been verified and the item below is now unlocked:"
	if status == "rejected" {
		headline = "Payment Verification Failed"
		detail = "We could not verify your payment for the item below. You can resubmit with a new payment proof."
	}

	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">%s</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
	`, userName, detail, itemTitle)
	if notes != "" {
		body += fmt.Sprintf(`<p style="font-size: 14px; color: #666666;">Note from our team: %s</p>`, notes)
	}

	return SendEmail([]string{email}, "Payment Verification Update - Pro Academy", emailTemplate(headline, body))
}
