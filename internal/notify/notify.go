// Package notify delivers full-bin alert emails with abstraction for
// testing. The real implementation posts to the Brevo transactional API.
package notify

import "fmt"

// Message is one alert to deliver.
type Message struct {
	Subject  string
	HTMLBody string
}

// Mailer sends alert messages.
type Mailer interface {
	// Send delivers the message. A non-nil error means the attempt failed
	// and the throttle state must not be advanced.
	Send(msg Message) error
}

// FullAlert builds the alert sent when the bin becomes full. location is a
// free-form label for where the bin lives.
func FullAlert(location string) Message {
	return Message{
		Subject: "Waste Bin Full Alert",
		HTMLBody: fmt.Sprintf(`<html>
<body>
<h1>Waste Bin Full Alert</h1>
<p><strong>Location:</strong> %s</p>
<p>The bin is full and needs to be emptied.</p>
</body>
</html>`, location),
	}
}
