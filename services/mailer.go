package services

import (
	"fmt"
	"log"
	"os"

	"fougue-server/models"

	"github.com/resend/resend-go/v2"
)

// MailerService sends transactional mail through Resend. Every send is best
// effort: a failure is logged and never propagated to the caller, so a mail
// outage cannot fail a booking or a signup.
type MailerService struct {
	client *resend.Client
	from   string
	inbox  string // back-office address for contact notifications
}

// Mailer is the shared instance; InitializeMailer must run at boot.
var Mailer *MailerService

func InitializeMailer() {
	apiKey := os.Getenv("RESEND_API_KEY")
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "Fougue <hello@fougue.example>"
	}
	inbox := os.Getenv("MAIL_INBOX")
	if inbox == "" {
		inbox = "contact@fougue.example"
	}

	Mailer = &MailerService{from: from, inbox: inbox}
	if apiKey == "" {
		log.Println("RESEND_API_KEY not set, outgoing mail disabled")
		return
	}
	Mailer.client = resend.NewClient(apiKey)
}

func (m *MailerService) send(to, subject, html string) {
	if m == nil || m.client == nil {
		log.Printf("mailer disabled, skipping %q to %s", subject, to)
		return
	}
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := m.client.Emails.Send(params); err != nil {
		log.Printf("mailer: failed to send %q to %s: %v", subject, to, err)
	}
}

func (m *MailerService) SendNewsletterWelcome(subscriber models.NewsletterSubscriber) {
	name := subscriber.Name
	if name == "" {
		name = "there"
	}
	html := fmt.Sprintf("<p>Hi %s,</p><p>Thanks for subscribing to the Fougue newsletter. Expect new experiences and offers once a month, never more.</p>", name)
	m.send(subscriber.Email, "Welcome to Fougue", html)
}

func (m *MailerService) SendContactNotification(message models.ContactMessage) {
	subject := message.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	html := fmt.Sprintf("<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>", message.Name, message.Email, message.Message)
	m.send(m.inbox, "Contact form: "+subject, html)
}

func (m *MailerService) SendBookingConfirmation(booking models.Booking, experience models.Experience) {
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your booking request for <strong>%s</strong> on %s for %d people. We'll confirm it shortly.</p>",
		booking.CustomerName, experience.Title, booking.Date, booking.PartySize,
	)
	m.send(booking.CustomerEmail, "Your Fougue booking request", html)
}
