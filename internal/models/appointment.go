package models

// Atendimento agendado. `date` e `time` ficam em formato ISO de largura
// fixa ("2006-01-02" / "15:04"), o que torna a ordenação lexicográfica
// por date+time equivalente à ordenação cronológica.
type Appointment struct {
	ID string `json:"id"`

	ClientID string `json:"clientId" binding:"required"`

	// Cópia desnormalizada do nome no momento da criação; não é
	// atualizada quando o cliente é renomeado.
	ClientName string `json:"clientName,omitempty"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	Service string `json:"service,omitempty"`
	Status  string `json:"status,omitempty"`

	// Observações feitas no agendamento
	Notes string `json:"notes,omitempty"`

	// Dossiê preenchido pela profissional durante/após a sessão
	ServiceNotes  string   `json:"serviceNotes,omitempty"`
	ServicePhotos []string `json:"servicePhotos,omitempty"`
}

// SortKey concatena date+time; válido como chave de ordenação porque
// ambos os campos são ISO de largura fixa com zeros à esquerda.
func (a Appointment) SortKey() string {
	return a.Date + a.Time
}

type AppointmentPatch struct {
	ClientID      *string   `json:"clientId,omitempty"`
	ClientName    *string   `json:"clientName,omitempty"`
	Date          *string   `json:"date,omitempty"`
	Time          *string   `json:"time,omitempty"`
	Service       *string   `json:"service,omitempty"`
	Status        *string   `json:"status,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	ServiceNotes  *string   `json:"serviceNotes,omitempty"`
	ServicePhotos *[]string `json:"servicePhotos,omitempty"`
}
