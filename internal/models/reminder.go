package models

const DefaultReminderCategory = "Geral"

// Lembrete livre do painel; não tem prazo nem estado de conclusão,
// existe até ser apagado explicitamente.
type Reminder struct {
	ID       string `json:"id"`
	Category string `json:"category,omitempty"`
	Text     string `json:"text" binding:"required"`
}
