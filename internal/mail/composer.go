package mail

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"moversmove/backend/internal/domain"
)

// layoutHTML is the shared frame around every notification email.
const layoutHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Subject}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #0A5DB5 0%, #FF7A00 100%); color: white; padding: 30px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    .highlight { background: #e3f2fd; padding: 15px; border-left: 4px solid #0A5DB5; margin: 15px 0; }
    .button { display: inline-block; background: #FF7A00; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Movers Move</h1>
    <p>Professional Canadian Logistics &amp; Moving Services</p>
  </div>
  <div class="content">
    {{.Content}}
  </div>
  <div class="footer">
    <p>&copy; Movers Move. All rights reserved.</p>
    <p>123 Moving Way, Toronto, ON M5V 2H1 | <a href="mailto:mail@moversmove.ca">mail@moversmove.ca</a></p>
  </div>
</body>
</html>
`

const contactHTML = `<h2>New Contact Form Submission</h2>
<div class="highlight">
  <strong>From:</strong> {{.Name}} ({{.Email}})
</div>
<h3>Contact Information</h3>
<p><strong>Address:</strong> {{.Address}}</p>
<h3>Inquiry</h3>
<p>{{nl2br .Inquiry}}</p>
<div class="highlight">
  <strong>Page Source:</strong> {{.Source}}<br>
  <strong>Submitted:</strong> {{.SubmittedAt}}
</div>
<p><a href="mailto:{{.Email}}" class="button">Reply to Customer</a></p>
`

const quoteHTML = `<h2>New Quote Request</h2>
<div class="highlight">
  <strong>Service Type:</strong> {{.ServiceType}}<br>
  <strong>From:</strong> {{.Name}} ({{.Email}})<br>
  {{if .Phone}}<strong>Phone:</strong> {{.Phone}}<br>{{end}}
</div>
<h3>Move Details</h3>
<p><strong>Pickup Address:</strong> {{.PickupAddress}}</p>
{{if .DropOffAddress}}<p><strong>Drop-off Address:</strong> {{.DropOffAddress}}</p>{{end}}
{{if .PreferredDate}}<p><strong>Preferred Date:</strong> {{.PreferredDate}}</p>{{end}}
<h3>Description</h3>
<p>{{nl2br .Description}}</p>
<div class="highlight">
  <strong>Page Source:</strong> {{.Source}}<br>
  <strong>Submitted:</strong> {{.SubmittedAt}}
</div>
<p><a href="mailto:{{.Email}}" class="button">Reply to Customer</a></p>
`

const faqHTML = `<h2>New FAQ Question</h2>
<div class="highlight">
  <strong>From:</strong> {{.Name}} ({{.Email}})
</div>
<h3>Question</h3>
<p>{{nl2br .Question}}</p>
<div class="highlight">
  <strong>Page Source:</strong> {{.Source}}<br>
  <strong>Submitted:</strong> {{.SubmittedAt}}
</div>
<p><a href="mailto:{{.Email}}" class="button">Reply to Customer</a></p>
`

// nl2br escapes user text, then turns newlines into explicit breaks. Raw
// angle brackets never pass through unescaped.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

var templateFuncs = template.FuncMap{"nl2br": nl2br}

// Composer builds the notification email for a validated submission.
type Composer struct {
	to       string
	from     string
	layout   *template.Template
	contact  *template.Template
	quote    *template.Template
	faq      *template.Template
	location *time.Location
	now      func() time.Time
}

// NewComposer parses the templates once up front. The submission timestamp
// is rendered in Toronto time for the operator reading the inbox.
func NewComposer(to, from string) (*Composer, error) {
	layout, err := template.New("layout").Parse(layoutHTML)
	if err != nil {
		return nil, fmt.Errorf("parse layout template: %w", err)
	}
	contact, err := template.New("contact").Funcs(templateFuncs).Parse(contactHTML)
	if err != nil {
		return nil, fmt.Errorf("parse contact template: %w", err)
	}
	quote, err := template.New("quote").Funcs(templateFuncs).Parse(quoteHTML)
	if err != nil {
		return nil, fmt.Errorf("parse quote template: %w", err)
	}
	faq, err := template.New("faq").Funcs(templateFuncs).Parse(faqHTML)
	if err != nil {
		return nil, fmt.Errorf("parse faq template: %w", err)
	}

	location, err := time.LoadLocation("America/Toronto")
	if err != nil {
		location = time.UTC
	}

	return &Composer{
		to:       to,
		from:     from,
		layout:   layout,
		contact:  contact,
		quote:    quote,
		faq:      faq,
		location: location,
		now:      time.Now,
	}, nil
}

// Template data wraps the submission so the promoted fields, the Source
// method and the rendered timestamp are all reachable by name.
type contactData struct {
	*domain.ContactSubmission
	SubmittedAt string
}

type quoteData struct {
	*domain.QuoteSubmission
	SubmittedAt string
}

type faqData struct {
	*domain.FAQSubmission
	SubmittedAt string
}

// Compose builds the subject, HTML body and plain-text body for a
// submission. HTML and text are rendered from the same fields, so they
// differ in formatting only.
func (c *Composer) Compose(sub domain.Submission) (*Message, error) {
	submittedAt := c.now().In(c.location).Format("2006-01-02, 3:04:05 PM MST")

	var (
		subject string
		replyTo string
		text    string
		tmpl    *template.Template
		data    any
	)

	switch s := sub.(type) {
	case *domain.ContactSubmission:
		subject = "New Contact Form Submission"
		replyTo = s.Email
		tmpl = c.contact
		data = contactData{ContactSubmission: s, SubmittedAt: submittedAt}
		text = contactText(s, submittedAt)
	case *domain.QuoteSubmission:
		subject = fmt.Sprintf("New Quote Request - %s", s.ServiceType)
		replyTo = s.Email
		tmpl = c.quote
		data = quoteData{QuoteSubmission: s, SubmittedAt: submittedAt}
		text = quoteText(s, submittedAt)
	case *domain.FAQSubmission:
		subject = fmt.Sprintf("New FAQ Question from %s", s.Name)
		replyTo = s.Email
		tmpl = c.faq
		data = faqData{FAQSubmission: s, SubmittedAt: submittedAt}
		text = faqText(s, submittedAt)
	default:
		return nil, fmt.Errorf("no template for form kind %q", sub.Kind())
	}

	var content strings.Builder
	if err := tmpl.Execute(&content, data); err != nil {
		return nil, fmt.Errorf("render %s template: %w", sub.Kind(), err)
	}

	// The fragment is already rendered with escaping applied; mark it safe
	// so the layout does not escape it a second time.
	var body strings.Builder
	layoutData := struct {
		Subject string
		Content template.HTML
	}{Subject: subject, Content: template.HTML(content.String())}
	if err := c.layout.Execute(&body, layoutData); err != nil {
		return nil, fmt.Errorf("render layout: %w", err)
	}

	return &Message{
		To:      c.to,
		From:    c.from,
		ReplyTo: replyTo,
		Subject: subject,
		HTML:    body.String(),
		Text:    text,
	}, nil
}

func contactText(s *domain.ContactSubmission, submittedAt string) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "From: %s (%s)\n", s.Name, s.Email)
	fmt.Fprintf(&b, "Address: %s\n\n", s.Address)
	fmt.Fprintf(&b, "Inquiry:\n%s\n\n", s.Inquiry)
	fmt.Fprintf(&b, "Page Source: %s\n", s.Source())
	fmt.Fprintf(&b, "Submitted: %s\n", submittedAt)
	return b.String()
}

func quoteText(s *domain.QuoteSubmission, submittedAt string) string {
	var b strings.Builder
	b.WriteString("New Quote Request\n\n")
	fmt.Fprintf(&b, "Service Type: %s\n", s.ServiceType)
	fmt.Fprintf(&b, "From: %s (%s)\n", s.Name, s.Email)
	if s.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", s.Phone)
	}
	fmt.Fprintf(&b, "\nPickup Address: %s\n", s.PickupAddress)
	if s.DropOffAddress != "" {
		fmt.Fprintf(&b, "Drop-off Address: %s\n", s.DropOffAddress)
	}
	if s.PreferredDate != "" {
		fmt.Fprintf(&b, "Preferred Date: %s\n", s.PreferredDate)
	}
	fmt.Fprintf(&b, "\nDescription:\n%s\n\n", s.Description)
	fmt.Fprintf(&b, "Page Source: %s\n", s.Source())
	fmt.Fprintf(&b, "Submitted: %s\n", submittedAt)
	return b.String()
}

func faqText(s *domain.FAQSubmission, submittedAt string) string {
	var b strings.Builder
	b.WriteString("New FAQ Question\n\n")
	fmt.Fprintf(&b, "From: %s (%s)\n", s.Name, s.Email)
	fmt.Fprintf(&b, "\nQuestion:\n%s\n\n", s.Question)
	fmt.Fprintf(&b, "Page Source: %s\n", s.Source())
	fmt.Fprintf(&b, "Submitted: %s\n", submittedAt)
	return b.String()
}
