package facade

import (
	"errors"
	"fmt"
)

// ErrPayloadTooLarge rejeita documentos acima do teto configurado
// antes de qualquer chamada de rede, em vez de deixar a escrita
// estourar de forma opaca no transporte.
var ErrPayloadTooLarge = errors.New("document payload exceeds the configured limit")

// MutationError uniformiza toda falha de mutação: criação,
// atualização e remoção seguem o mesmo caminho de reporte.
type MutationError struct {
	Op     string
	Entity string
	Cause  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

func (e *MutationError) Unwrap() error { return e.Cause }

// Prefixos exibidos à usuária, os mesmos textos do app web.
var userMessages = map[string]string{
	OpAddClient:           "Erro ao salvar cliente",
	OpUpdateClient:        "Erro ao atualizar",
	OpAddAppointment:      "Erro ao agendar",
	OpUpdateAppointment:   "Erro ao salvar dossiê",
	OpCancelAppointment:   "Erro ao cancelar atendimento",
	OpCompleteAppointment: "Erro ao concluir atendimento",
	OpAddReminder:         "Erro ao criar lembrete",
	OpDeleteReminder:      "Erro ao remover lembrete",
	OpUpdateClinicInfo:    "Erro ao salvar marca",
}

// UserMessage devolve a mensagem humana em português: prefixo da
// operação mais o texto cru da causa.
func (e *MutationError) UserMessage() string {
	prefix, ok := userMessages[e.Op]
	if !ok {
		prefix = "Erro ao salvar"
	}
	return prefix + ": " + e.Cause.Error()
}
