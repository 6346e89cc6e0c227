package email

import (
	"fmt"
	"time"
)

// OTPEmail renders the subject and HTML body for a one-time code email.
func OTPEmail(otp string, ttl time.Duration) (subject, htmlBody string) {
	subject = "Your OTP Code"
	htmlBody = fmt.Sprintf("<h3>Your OTP is <b>%s</b></h3><p>It will expire in %d minutes.</p>", otp, int(ttl.Minutes()))
	return subject, htmlBody
}

// TicketConfirmationEmail renders the acknowledgement sent when a
// support ticket is opened.
func TicketConfirmationEmail(ticketNumber, ticketSubject string) (subject, htmlBody string) {
	subject = fmt.Sprintf("Support ticket %s received", ticketNumber)
	htmlBody = fmt.Sprintf("<h3>We received your request</h3><p>Ticket <b>%s</b> (%s) has been created. Our team will get back to you soon.</p>", ticketNumber, ticketSubject)
	return subject, htmlBody
}

// TicketReplyEmail renders the notification sent when an agent replies.
func TicketReplyEmail(ticketNumber, reply string) (subject, htmlBody string) {
	subject = fmt.Sprintf("Update on support ticket %s", ticketNumber)
	htmlBody = fmt.Sprintf("<h3>Your ticket %s has a new reply</h3><p>%s</p>", ticketNumber, reply)
	return subject, htmlBody
}
