// Package mail composes and delivers the notification emails produced by
// form submissions.
package mail

// Message is one composed email. It exists for the lifetime of a single
// submission: built by the Composer, handed to the Dispatcher, discarded.
type Message struct {
	To      string
	From    string
	ReplyTo string // customer address, so the operator can answer directly
	Subject string
	HTML    string
	Text    string
}
