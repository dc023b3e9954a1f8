package domain

// IngestPayload is a parsed intake email submitted to the pipeline. The write
// is a pass-through: the backend acknowledges in its own shape and nothing is
// merged into any cached read model.
type IngestPayload struct {
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments"`
	Sender      string   `json:"sender"`
	ReceivedAt  string   `json:"received_at"`
}
