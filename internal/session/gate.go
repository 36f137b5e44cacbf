package session

import (
	"sync"

	"github.com/dominio-lash/lumiere-api/internal/models"
)

// Gate controla a sessão ativa: decodifica o token de identidade,
// persiste o perfil e responde quem está logada. Todo acesso remoto
// fica atrás de "há um perfil ativo?".
type Gate struct {
	mu      sync.RWMutex
	store   ProfileStore
	current *models.Profile
}

func NewGate(store ProfileStore) *Gate {
	return &Gate{store: store}
}

// SignIn decodifica o token, persiste o perfil e o torna ativo.
// Token malformado devolve *AuthError e a sessão não inicia.
func (g *Gate) SignIn(token string) (*models.Profile, error) {
	profile, err := DecodeIDToken(token)
	if err != nil {
		return nil, err
	}

	if err := g.store.Save(profile); err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.current = profile
	g.mu.Unlock()

	return profile, nil
}

// Resume retoma a sessão persistida sem redecodificar token algum;
// é o que pula a tela de login quando o perfil já está salvo.
func (g *Gate) Resume() (*models.Profile, error) {
	profile, err := g.store.Load()
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.current = profile
	g.mu.Unlock()

	return profile, nil
}

// SignOut remove o perfil persistido e limpa a sessão ativa. Quem
// consome deve descartar por completo o estado sincronizado; não há
// teardown parcial.
func (g *Gate) SignOut() error {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()

	return g.store.Clear()
}

// Current devolve o perfil ativo ou nil.
func (g *Gate) Current() *models.Profile {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}
