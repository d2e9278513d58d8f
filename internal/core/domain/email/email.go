package email

// SendEmailRequest is the inbound payload for a send request. Pointer fields
// distinguish an absent field from an empty string during presence validation.
type SendEmailRequest struct {
	APIKey        *string `json:"apikey"`
	ToAddress     *string `json:"toaddress"`
	EmailTemplate *string `json:"emailtemplate"`
}

// Email represents one outbound message handed to a provider.
type Email struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// SendResult carries the provider metadata echoed back to the caller on
// success. The shape is provider-defined; callers treat it as opaque.
type SendResult struct {
	Provider   string `json:"provider"`
	MessageID  string `json:"message_id,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}
