package notify

// FakeMailer records sent messages for test assertions.
type FakeMailer struct {
	// Sent contains all successfully delivered messages.
	Sent []Message

	// SendError, if set, is returned by Send and the message is not
	// recorded.
	SendError error

	// Attempts counts every Send call, including failures.
	Attempts int
}

// NewFakeMailer creates a FakeMailer for testing.
func NewFakeMailer() *FakeMailer {
	return &FakeMailer{}
}

// Send records the message, or fails with SendError.
func (f *FakeMailer) Send(msg Message) error {
	f.Attempts++
	if f.SendError != nil {
		return f.SendError
	}
	f.Sent = append(f.Sent, msg)
	return nil
}

// Reset clears recorded messages and errors.
func (f *FakeMailer) Reset() {
	f.Sent = nil
	f.SendError = nil
	f.Attempts = 0
}
