package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail delivers one HTML email through the SMTP server configured
// by the EMAIL_* environment variables.
func SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	port, err := strconv.Atoi(os.Getenv("EMAIL_PORT"))
	if err != nil {
		port = 465
	}

	d := gomail.NewDialer(os.Getenv("EMAIL_HOST"), port, os.Getenv("EMAIL_USER"), os.Getenv("EMAIL_PASS"))

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Email sending error: %v", err)
		return err
	}
	return nil
}

// AdminEmail is the fallback recipient for operational notifications.
func AdminEmail() string {
	if admin := os.Getenv("ADMIN_EMAIL"); admin != "" {
		return admin
	}
	return os.Getenv("EMAIL_FROM")
}

func FrontendURL() string {
	return os.Getenv("FRONTEND_URL")
}
