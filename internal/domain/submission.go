package domain

// FormKind identifies which lead form a submission came from. The kind
// selects the validation schema, the email template and the subject rule.
type FormKind string

const (
	KindContact FormKind = "contact"
	KindQuote   FormKind = "quote"
	KindFAQ     FormKind = "faq"
)

// Service categories offered on the quote form. The quote schema rejects
// anything outside this list.
const (
	ServiceLocalMoves       = "Local Moves"
	ServiceInternational    = "International Moves"
	ServiceResidential      = "Residential Moves"
	ServiceCommercial       = "Commercial Moves"
	ServiceSpecialty        = "Specialty Moves"
	ServiceStorageSolutions = "Storage Solutions"
)

// ServiceTypes lists the valid quote service categories.
var ServiceTypes = []string{
	ServiceLocalMoves,
	ServiceInternational,
	ServiceResidential,
	ServiceCommercial,
	ServiceSpecialty,
	ServiceStorageSolutions,
}

// Submission is one form submission of any kind. Each kind is a fixed typed
// shape; the transport layer binds request bodies directly into these
// structs and rejects anything that does not fit.
type Submission interface {
	Kind() FormKind
	// Token returns the client-side Turnstile token.
	Token() string
	// Source returns the page the form was submitted from, with the
	// form's canonical page as the default.
	Source() string
	// Validate returns one user-safe error per invalid field, or nil.
	Validate() []FieldError
}

// ContactSubmission is the general contact form.
type ContactSubmission struct {
	Name           string `form:"name" json:"name" validate:"required,min=2,max=100"`
	Email          string `form:"email" json:"email" validate:"required,email"`
	Address        string `form:"address" json:"address" validate:"required,min=10,max=200"`
	Inquiry        string `form:"inquiry" json:"inquiry" validate:"required,min=10,max=1000"`
	TurnstileToken string `form:"turnstileToken" json:"turnstileToken" validate:"required"`
	PageSource     string `form:"pageSource" json:"pageSource" validate:"omitempty,max=200"`
}

func (s *ContactSubmission) Kind() FormKind { return KindContact }
func (s *ContactSubmission) Token() string  { return s.TurnstileToken }

func (s *ContactSubmission) Source() string {
	if s.PageSource == "" {
		return "/contact"
	}
	return s.PageSource
}

func (s *ContactSubmission) Validate() []FieldError { return validateStruct(s) }

// QuoteSubmission is the quote request form.
type QuoteSubmission struct {
	Name           string `form:"name" json:"name" validate:"required,min=2,max=100"`
	Email          string `form:"email" json:"email" validate:"required,email"`
	Phone          string `form:"phone" json:"phone" validate:"omitempty,dialstring"`
	PickupAddress  string `form:"pickupAddress" json:"pickupAddress" validate:"required,min=10,max=200"`
	DropOffAddress string `form:"dropOffAddress" json:"dropOffAddress" validate:"omitempty,max=200"`
	Description    string `form:"description" json:"description" validate:"required,min=10,max=1000"`
	PreferredDate  string `form:"preferredDate" json:"preferredDate" validate:"omitempty,max=100"`
	ServiceType    string `form:"serviceType" json:"serviceType" validate:"required,oneof='Local Moves' 'International Moves' 'Residential Moves' 'Commercial Moves' 'Specialty Moves' 'Storage Solutions'"`
	TurnstileToken string `form:"turnstileToken" json:"turnstileToken" validate:"required"`
	PageSource     string `form:"pageSource" json:"pageSource" validate:"omitempty,max=200"`
}

func (s *QuoteSubmission) Kind() FormKind { return KindQuote }
func (s *QuoteSubmission) Token() string  { return s.TurnstileToken }

func (s *QuoteSubmission) Source() string {
	if s.PageSource == "" {
		return "/quote"
	}
	return s.PageSource
}

func (s *QuoteSubmission) Validate() []FieldError { return validateStruct(s) }

// FAQSubmission is the "ask a question" form on the FAQ page.
type FAQSubmission struct {
	Name           string `form:"name" json:"name" validate:"required,min=2,max=100"`
	Email          string `form:"email" json:"email" validate:"required,email"`
	Question       string `form:"question" json:"question" validate:"required,min=10,max=500"`
	TurnstileToken string `form:"turnstileToken" json:"turnstileToken" validate:"required"`
	PageSource     string `form:"pageSource" json:"pageSource" validate:"omitempty,max=200"`
}

func (s *FAQSubmission) Kind() FormKind { return KindFAQ }
func (s *FAQSubmission) Token() string  { return s.TurnstileToken }

func (s *FAQSubmission) Source() string {
	if s.PageSource == "" {
		return "/faqs"
	}
	return s.PageSource
}

func (s *FAQSubmission) Validate() []FieldError { return validateStruct(s) }
