package mail

import (
	"context"
	"log"
)

// Service wraps a Sender with the delivery contract the rest of the
// app relies on: a failed send is logged and reported as false, never
// returned as an error. Account flows commit regardless of outcome.
type Service struct {
	sender Sender
}

func NewService(sender Sender) *Service {
	return &Service{sender: sender}
}

// SendTransactional delivers msg best-effort and reports whether the
// provider accepted it.
func (s *Service) SendTransactional(ctx context.Context, msg Message) bool {
	if err := s.sender.Send(ctx, msg); err != nil {
		log.Printf("failed to send email to %s: %v", msg.To, err)
		return false
	}
	return true
}
