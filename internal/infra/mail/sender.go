package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	Dialer Dialer
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		From:   from,
		Dialer: gomail.NewDialer(host, port, user, password),
	}
}

// SendLeadInvitation mails the generated note plus the confirmation link.
func (s *EmailSender) SendLeadInvitation(to, name, content, confirmURL string) error {
	data := InvitationEmailData{
		Name:       name,
		Paragraphs: paragraphs(content),
		ConfirmURL: confirmURL,
	}

	body, err := render("invitation.html", data)
	if err != nil {
		return err
	}

	text := content + "\n\nI'm interested: " + confirmURL + "\n"
	return s.send(to, fmt.Sprintf("Thank you, %s!", name), text, body)
}

func (s *EmailSender) SendInterestAlert(to, salespersonName, leadName, leadEmail string) error {
	data := InterestAlertData{
		SalespersonName: salespersonName,
		LeadName:        leadName,
		LeadEmail:       leadEmail,
	}

	body, err := render("interest_alert.html", data)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Hi %s,\n\n%s (%s) just confirmed interest.\n", salespersonName, leadName, leadEmail)
	return s.send(to, fmt.Sprintf("%s is interested", leadName), text, body)
}

func (s *EmailSender) send(to, subject, text, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send smtp email to %s: %w", to, err)
	}
	return nil
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}

// paragraphs splits generated text on line breaks, dropping blank lines.
func paragraphs(content string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
