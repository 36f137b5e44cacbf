package models

// Status possíveis de um cliente da clínica
const (
	ClientStatusActive   = "active"
	ClientStatusVIP      = "vip"
	ClientStatusInactive = "inactive"
)

// Cliente da clínica. Os nomes JSON seguem os documentos gravados
// pelo app web; `id` é a chave do documento remoto e nunca muda.
type Client struct {
	ID string `json:"id"`

	Name  string `json:"name" binding:"required"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	WhatsApp  string `json:"whatsapp,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`

	// URL remota ou imagem inline em base64 (data URL)
	PhotoURL string `json:"photoUrl,omitempty"`

	Notes  string   `json:"notes,omitempty"`
	Status string   `json:"status,omitempty"`
	Tags   []string `json:"tags,omitempty"`

	// "YYYY-MM-DD"; só mês e dia importam para aniversários
	Birthday string `json:"birthday,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`

	// Mantido pelo formato do documento; os atendimentos são
	// resolvidos por clientId, nunca por este campo.
	History []Appointment `json:"history,omitempty"`
}

// ClientPatch carrega apenas os campos presentes em uma atualização
// parcial; campos nil não tocam o documento remoto.
type ClientPatch struct {
	Name      *string   `json:"name,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	WhatsApp  *string   `json:"whatsapp,omitempty"`
	Instagram *string   `json:"instagram,omitempty"`
	Facebook  *string   `json:"facebook,omitempty"`
	PhotoURL  *string   `json:"photoUrl,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Status    *string   `json:"status,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	Birthday  *string   `json:"birthday,omitempty"`
}
