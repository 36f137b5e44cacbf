package models

// Perfil da profissional autenticada via Google. O e-mail é a chave
// que escopa toda a árvore de documentos remota da usuária.
type Profile struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

// Active informa se o perfil pode escopar acessos remotos.
func (p *Profile) Active() bool {
	return p != nil && p.Email != ""
}
