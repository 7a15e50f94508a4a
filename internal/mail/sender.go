package mail

import "context"

// Message is one transactional email. HTMLBody is optional; when set
// the sender delivers both plain-text and HTML parts.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a single message through one provider. Implementations
// are chosen once at startup; callers never branch on provider type.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
