package dto

// SendMessageRequest mensaje directo entre usuarios.
type SendMessageRequest struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}
