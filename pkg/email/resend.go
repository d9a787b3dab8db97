package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"github.com/sefazor/tournest-backend/internal/config"
	"go.uber.org/zap"
)

var templates = template.Must(template.New("email").Parse(`
{{define "guide-approved"}}<p>Hi {{.Name}},</p>
<p>Your application has been approved. You are now a tour guide on TourNest and tourists can book you from today.</p>
<p>TourNest &copy; {{.Year}}</p>{{end}}
{{define "application-rejected"}}<p>Hi {{.Name}},</p>
<p>Thank you for applying to guide with TourNest. We are not able to accept your application at this time.</p>
<p>TourNest &copy; {{.Year}}</p>{{end}}
{{define "booking-status"}}<p>Hi {{.Name}},</p>
<p>Your booking for <strong>{{.Package}}</strong> on {{.TourDate}} is now <strong>{{.Status}}</strong>.</p>
<p>TourNest &copy; {{.Year}}</p>{{end}}
`))

type EmailService struct {
	send     func(*resend.SendEmailRequest) (string, error)
	from     string
	fromName string
	logger   *zap.Logger
}

// NewEmailService returns a service that only logs when no API key is configured.
func NewEmailService(cfg config.EmailConfig, logger *zap.Logger) *EmailService {
	s := &EmailService{
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger.Named("email"),
	}
	if cfg.APIKey != "" {
		client := resend.NewClient(cfg.APIKey)
		s.send = func(req *resend.SendEmailRequest) (string, error) {
			resp, err := client.Emails.Send(req)
			if err != nil {
				return "", err
			}
			return resp.Id, nil
		}
	}
	return s
}

func (s *EmailService) SendGuideApprovedEmail(to, name string) error {
	return s.deliver(to, "You are now a TourNest tour guide", "guide-approved", map[string]interface{}{
		"Name": name,
	})
}

func (s *EmailService) SendApplicationRejectedEmail(to, name string) error {
	return s.deliver(to, "Your TourNest guide application", "application-rejected", map[string]interface{}{
		"Name": name,
	})
}

func (s *EmailService) SendBookingStatusEmail(to, name, packageName, status string, tourDate time.Time) error {
	subject := fmt.Sprintf("Booking %s - %s", status, packageName)
	return s.deliver(to, subject, "booking-status", map[string]interface{}{
		"Name":     name,
		"Package":  packageName,
		"Status":   status,
		"TourDate": tourDate.Format("2 January 2006"),
	})
}

func (s *EmailService) deliver(to, subject, tmpl string, data map[string]interface{}) error {
	if to == "" {
		return nil
	}
	if s.send == nil {
		s.logger.Debug("email disabled, skipping", zap.String("template", tmpl), zap.String("to", to))
		return nil
	}

	data["Year"] = time.Now().Year()
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}

	id, err := s.send(&resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("send %s: %w", tmpl, err)
	}

	s.logger.Info("email sent", zap.String("template", tmpl), zap.String("to", to), zap.String("id", id))
	return nil
}
