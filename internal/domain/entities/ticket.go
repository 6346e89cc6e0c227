package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TicketStatus represents support ticket lifecycle states
type TicketStatus string

const (
	TicketStatusNew     TicketStatus = "new"
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusReplied TicketStatus = "replied"
	TicketStatusClosed  TicketStatus = "closed"
)

// Valid reports whether the status is a known ticket state
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusNew, TicketStatusOpen, TicketStatusReplied, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket number prefixes. User-created tickets get TKT, tickets raised
// from the admin console get ADM.
const (
	TicketPrefixUser  = "TKT"
	TicketPrefixAdmin = "ADM"
)

// Ticket represents a support ticket
type Ticket struct {
	ID           uuid.UUID    `json:"id"`
	TicketNumber string       `json:"ticketNumber"`
	UserID       null.String  `json:"userId,omitempty"`
	Email        string       `json:"email"`
	Subject      string       `json:"subject"`
	Message      string       `json:"message"`
	Status       TicketStatus `json:"status"`
	Reply        null.String  `json:"reply,omitempty"`
	RepliedBy    null.String  `json:"repliedBy,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// NewTicketNumber builds a human-readable ticket reference from the
// given prefix and creation time, e.g. TKT-LX2M4K9A.
func NewTicketNumber(prefix string, at time.Time) string {
	frag := strings.ToUpper(strconv.FormatInt(at.UnixMilli(), 36))
	return fmt.Sprintf("%s-%s", prefix, frag)
}

// CreateTicketInput represents input for opening a ticket
type CreateTicketInput struct {
	Subject string `json:"subject" binding:"required,min=3,max=200"`
	Message string `json:"message" binding:"required,min=3"`
}

// ReplyTicketInput represents input for replying to a ticket
type ReplyTicketInput struct {
	Reply string `json:"reply" binding:"required,min=1"`
}
