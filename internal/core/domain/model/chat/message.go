package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"crowddelivery/internal/pkg/errs"
)

const maxTextLength = 2000

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage constructor")

// Kind is the payload type of a chat message.
type Kind string

const (
	Text  Kind = "text"
	Voice Kind = "voice"
	Photo Kind = "photo"
	Video Kind = "video"
)

// Validate checks that the kind is one of text, voice, photo or video.
func (k Kind) Validate() error {
	switch k {
	case Text, Voice, Photo, Video:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid message type", string(k)))
	}
}

// IsMedia reports whether the message content lives behind a media locator.
func (k Kind) IsMedia() bool {
	return k == Voice || k == Photo || k == Video
}

// Snapshot is the persisted and published form of a chat message.
type Snapshot struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	SenderID  int64     `json:"senderId"`
	Kind      Kind      `json:"type"`
	Message   string    `json:"message"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is a single chat entry attached to an order.
type Message struct {
	s             Snapshot
	isConstructed bool
}

// NewMessage validates a message before it is stored.
// Text messages need non-empty text; media messages need a URL and may carry a caption.
func NewMessage(orderID, senderID int64, kind Kind, text, url string, now time.Time) (*Message, error) {
	m := &Message{
		s: Snapshot{
			OrderID:   orderID,
			SenderID:  senderID,
			Kind:      kind,
			Message:   strings.TrimSpace(text),
			URL:       strings.TrimSpace(url),
			CreatedAt: now.UTC(),
		},
		isConstructed: true,
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// RestoreMessage rebuilds a stored message.
func RestoreMessage(s Snapshot) (*Message, error) {
	if s.ID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive identifier", s.ID))
	}
	s.CreatedAt = s.CreatedAt.UTC()
	m := &Message{s: s, isConstructed: true}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate ensures the Message instance was properly constructed.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() int64 { return m.s.ID }
func (m *Message) OrderID() int64 { return m.s.OrderID }
func (m *Message) SenderID() int64 { return m.s.SenderID }
func (m *Message) Kind() Kind { return m.s.Kind }
func (m *Message) Snapshot() Snapshot { return m.s }

func (m *Message) validate() error {
	s := m.s
	var problems []error

	if s.OrderID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not a positive identifier", s.OrderID)))
	}
	if s.SenderID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("senderId", fmt.Errorf("%d is not a positive identifier", s.SenderID)))
	}
	if err := s.Kind.Validate(); err != nil {
		problems = append(problems, err)
	}
	if s.Kind == Text && s.Message == "" {
		problems = append(problems, errs.NewValueIsRequiredError("message"))
	}
	if s.Kind.IsMedia() && s.URL == "" {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("url", fmt.Errorf("%s messages need a media url", s.Kind)))
	}
	if len([]rune(s.Message)) > maxTextLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("message length", len([]rune(s.Message)), 0, maxTextLength))
	}

	return errors.Join(problems...)
}
