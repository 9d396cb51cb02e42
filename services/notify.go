package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"finai/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type NotifierConfig struct {
	Enabled         bool
	SendGridKey     string
	MailFrom        string
	SlackWebhookURL string
}

// Notifier sends account emails through SendGrid and ops alerts to Slack.
// Every send is best effort: failures are logged, never returned.
type Notifier struct {
	cfg        NotifierConfig
	httpClient *http.Client
	sendMail   func(*mail.SGMailV3) (int, error)
}

func NewNotifier(cfg NotifierConfig) *Notifier {
	n := &Notifier{cfg: cfg, httpClient: &http.Client{Timeout: 10 * time.Second}}
	if cfg.SendGridKey != "" {
		client := sendgrid.NewSendClient(cfg.SendGridKey)
		n.sendMail = func(m *mail.SGMailV3) (int, error) {
			resp, err := client.Send(m)
			if err != nil {
				return 0, err
			}
			return resp.StatusCode, nil
		}
	}
	return n
}

func (n *Notifier) Welcome(u *models.User) {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	body := fmt.Sprintf(`Hi %s,

Your FinAI account is ready. You are on the %s plan.

Search company fundamentals, run sector and company analysis, or build a
personal finance plan from your dashboard.

---
Account: %s`, firstNonEmpty(u.FirstName, "there"), u.SubscriptionTier, u.Email)
	n.email(u.Email, name, "Welcome to FinAI", body)
}

func (n *Notifier) PlanChanged(u *models.User, tier, status string) {
	subject := fmt.Sprintf("Your FinAI plan is now %s", tier)
	if status == StatusCancelled {
		subject = "Your FinAI subscription was cancelled"
	}
	body := fmt.Sprintf(`Hi %s,

Plan: %s
Status: %s
Time: %s`, firstNonEmpty(u.FirstName, "there"), tier, status, time.Now().UTC().Format(time.RFC3339))
	n.email(u.Email, strings.TrimSpace(u.FirstName+" "+u.LastName), subject, body)
}

// QuotaExhausted posts to Slack when the market data quota for the day is
// used up.
func (n *Notifier) QuotaExhausted(limit int) {
	n.slack(fmt.Sprintf("⚠️ Market data quota exhausted\n\nAll %d Alpha Vantage calls for %s are used. Fundamentals requests will get 429 until tomorrow.",
		limit, time.Now().Format("2006-01-02")))
}

func (n *Notifier) email(to, name, subject, body string) {
	if !n.cfg.Enabled {
		return
	}
	if n.sendMail == nil || n.cfg.MailFrom == "" {
		log.Println("[notify] missing SendGrid config, skipping email")
		return
	}

	from := mail.NewEmail("FinAI", n.cfg.MailFrom)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail(name, to), body, strings.ReplaceAll(body, "\n", "<br>"))
	status, err := n.sendMail(message)
	if err != nil {
		log.Printf("[notify] error sending email: %v", err)
		return
	}
	if status >= 400 {
		log.Printf("[notify] SendGrid rejected email: status %d", status)
		return
	}
	log.Printf("[notify] email %q sent, status %d", subject, status)
}

func (n *Notifier) slack(text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[notify] slack panic recovered: %v", r)
		}
	}()

	if !n.cfg.Enabled {
		return
	}
	if n.cfg.SlackWebhookURL == "" {
		log.Println("[notify] slack skipped: SLACK_WEBHOOK_URL not set")
		return
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		log.Printf("[notify] error marshaling slack payload: %v", err)
		return
	}

	resp, err := n.httpClient.Post(n.cfg.SlackWebhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("[notify] error sending slack request: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("[notify] slack API error: status %d", resp.StatusCode)
	}
}
