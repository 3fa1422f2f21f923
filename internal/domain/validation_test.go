package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() *ContactSubmission {
	return &ContactSubmission{
		Name:           "Jordan Lee",
		Email:          "jordan@example.com",
		Address:        "123 Moving Way, Toronto, ON",
		Inquiry:        "Looking for help with a two-bedroom move next month.",
		TurnstileToken: "0.valid-turnstile-token-value",
	}
}

func validQuote() *QuoteSubmission {
	return &QuoteSubmission{
		Name:           "Jordan Lee",
		Email:          "jordan@example.com",
		PickupAddress:  "123 Moving Way, Toronto, ON",
		Description:    "Full household move, roughly 40 boxes and furniture.",
		ServiceType:    ServiceLocalMoves,
		TurnstileToken: "0.valid-turnstile-token-value",
	}
}

func validFAQ() *FAQSubmission {
	return &FAQSubmission{
		Name:           "Jordan Lee",
		Email:          "jordan@example.com",
		Question:       "Do you ship vehicles to Vancouver?",
		TurnstileToken: "0.valid-turnstile-token-value",
	}
}

func fieldErrorFor(errs []FieldError, field string) *FieldError {
	for i := range errs {
		if errs[i].Field == field {
			return &errs[i]
		}
	}
	return nil
}

func TestContactSubmissionValid(t *testing.T) {
	assert.Nil(t, validContact().Validate())
}

func TestContactSubmissionFieldBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContactSubmission)
		field   string
		message string
	}{
		{"name too short", func(s *ContactSubmission) { s.Name = "J" }, "name", "Name must be at least 2 characters"},
		{"name missing", func(s *ContactSubmission) { s.Name = "" }, "name", "Name must be at least 2 characters"},
		{"name too long", func(s *ContactSubmission) { s.Name = strings.Repeat("a", 101) }, "name", "Name must be less than 100 characters"},
		{"email invalid", func(s *ContactSubmission) { s.Email = "not-an-email" }, "email", "Please enter a valid email address"},
		{"email missing", func(s *ContactSubmission) { s.Email = "" }, "email", "Please enter a valid email address"},
		{"address too short", func(s *ContactSubmission) { s.Address = "short" }, "address", "Please enter a complete address"},
		{"address too long", func(s *ContactSubmission) { s.Address = strings.Repeat("a", 201) }, "address", "Address must be less than 200 characters"},
		{"inquiry too short", func(s *ContactSubmission) { s.Inquiry = "hi" }, "inquiry", "Message must be at least 10 characters"},
		{"inquiry too long", func(s *ContactSubmission) { s.Inquiry = strings.Repeat("a", 1001) }, "inquiry", "Message must be less than 1000 characters"},
		{"token missing", func(s *ContactSubmission) { s.TurnstileToken = "" }, "turnstileToken", "Please complete the security check"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validContact()
			tt.mutate(sub)

			errs := sub.Validate()
			require.NotEmpty(t, errs)

			fe := fieldErrorFor(errs, tt.field)
			require.NotNil(t, fe, "expected an error for field %s, got %v", tt.field, errs)
			assert.Equal(t, tt.message, fe.Message)
		})
	}
}

func TestQuoteSubmissionValid(t *testing.T) {
	assert.Nil(t, validQuote().Validate())
}

func TestQuoteSubmissionOptionalFields(t *testing.T) {
	sub := validQuote()
	sub.Phone = "+14165550123"
	sub.DropOffAddress = "456 Destination Ave, Ottawa, ON"
	sub.PreferredDate = "2026-09-15"
	sub.PageSource = "/services/local-moves"

	assert.Nil(t, sub.Validate())
}

func TestQuoteSubmissionServiceTypeEnum(t *testing.T) {
	for _, serviceType := range ServiceTypes {
		sub := validQuote()
		sub.ServiceType = serviceType
		assert.Nil(t, sub.Validate(), "service type %q should be accepted", serviceType)
	}

	sub := validQuote()
	sub.ServiceType = "Bulk Teleportation"

	errs := sub.Validate()
	require.NotEmpty(t, errs)
	fe := fieldErrorFor(errs, "serviceType")
	require.NotNil(t, fe)
	assert.Equal(t, "Please select a valid service type", fe.Message)
}

func TestQuoteSubmissionPhonePattern(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"", true}, // optional
		{"+14165550123", true},
		{"14165550123", true},
		{"4165550123", true},
		{"+1", true},
		{"0123456", false},  // leading zero
		{"+0123456", false}, // leading zero after plus
		{"416-555-0123", false},
		{"not a phone", false},
		{"+123456789012345678", false}, // too many digits
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			sub := validQuote()
			sub.Phone = tt.phone

			errs := sub.Validate()
			if tt.valid {
				assert.Nil(t, errs)
			} else {
				fe := fieldErrorFor(errs, "phone")
				require.NotNil(t, fe)
				assert.Equal(t, "Please enter a valid phone number", fe.Message)
			}
		})
	}
}

func TestFAQSubmissionValid(t *testing.T) {
	assert.Nil(t, validFAQ().Validate())
}

func TestFAQSubmissionQuestionBounds(t *testing.T) {
	sub := validFAQ()
	sub.Question = "eh?"

	errs := sub.Validate()
	require.NotEmpty(t, errs)
	fe := fieldErrorFor(errs, "question")
	require.NotNil(t, fe)
	assert.Equal(t, "Question must be at least 10 characters", fe.Message)

	sub = validFAQ()
	sub.Question = strings.Repeat("q", 501)
	errs = sub.Validate()
	fe = fieldErrorFor(errs, "question")
	require.NotNil(t, fe)
	assert.Equal(t, "Question must be less than 500 characters", fe.Message)
}

func TestSubmissionKindsAndSources(t *testing.T) {
	assert.Equal(t, KindContact, validContact().Kind())
	assert.Equal(t, KindQuote, validQuote().Kind())
	assert.Equal(t, KindFAQ, validFAQ().Kind())

	assert.Equal(t, "/contact", validContact().Source())
	assert.Equal(t, "/quote", validQuote().Source())
	assert.Equal(t, "/faqs", validFAQ().Source())

	sub := validContact()
	sub.PageSource = "/services"
	assert.Equal(t, "/services", sub.Source())
}

func TestMultipleFieldErrorsReported(t *testing.T) {
	sub := &ContactSubmission{}

	errs := sub.Validate()
	require.NotEmpty(t, errs)

	for _, field := range []string{"name", "email", "address", "inquiry", "turnstileToken"} {
		assert.NotNil(t, fieldErrorFor(errs, field), "missing error for %s", field)
	}
}
