package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/bassamadnan/triage/inquiry"
)

// Message is one inquiry rendered for every channel.
type Message struct {
	Row     inquiry.Row
	Subject string
	// HTML is the email body; user content is escaped.
	HTML string
	// Text is Slack mrkdwn; user content is escaped.
	Text string
}

var emailBody = template.Must(template.New("email").Parse(`
<h3>New Patient Inquiry</h3>
<b>Name:</b> {{.Name}}<br>
<b>Email:</b> {{.Email}}<br>
<b>Reported Urgency:</b> {{.Urgency}}<br><br>
<b>AI Summary (JSON):</b><br><pre style="white-space:pre-wrap;">{{.Summary}}</pre>
<hr>
<small>Timestamp: {{.Timestamp}}</small><br>
<small>Raw Symptoms: {{.Symptoms}}</small>
`))

// NewMessage builds the subject and bodies for a row and its summary.
func NewMessage(row inquiry.Row, sum inquiry.Summary) (Message, error) {
	summaryJSON, err := encodeSummary(sum)
	if err != nil {
		return Message{}, err
	}
	subject := fmt.Sprintf("New Patient Inquiry - %s - %s", row.ReportedUrgency(), orDefault(row.Name, "Unknown"))

	var html bytes.Buffer
	err = emailBody.Execute(&html, map[string]string{
		"Name":      orDefault(row.Name, "-"),
		"Email":     orDefault(row.Email, "-"),
		"Urgency":   orDefault(row.Urgency, "-"),
		"Summary":   summaryJSON,
		"Timestamp": orDefault(row.Timestamp, "-"),
		"Symptoms":  orDefault(row.Symptoms, "-"),
	})
	if err != nil {
		return Message{}, fmt.Errorf("unable to render email body: %w", err)
	}

	text := fmt.Sprintf("*%s*\n%s\n%s (%s)\n```%s```\n>%s",
		slackEscape(subject),
		slackEscape(row.Timestamp),
		slackEscape(row.Name),
		slackEscape(row.Email),
		slackEscape(summaryJSON),
		strings.ReplaceAll(slackEscape(orDefault(row.Symptoms, "-")), "\n", "\n>"),
	)

	return Message{Row: row, Subject: subject, HTML: html.String(), Text: text}, nil
}

func encodeSummary(sum inquiry.Summary) (string, error) {
	if sum.Keywords == nil {
		sum.Keywords = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sum); err != nil {
		return "", fmt.Errorf("unable to encode summary: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

var slackReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// slackEscape escapes the three characters Slack treats as control sequences.
func slackEscape(s string) string {
	return slackReplacer.Replace(s)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
