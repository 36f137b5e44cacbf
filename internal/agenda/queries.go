// Package agenda concentra as consultas de painel e calendário.
// Todas operam sobre os snapshots sincronizados em memória: o
// armazém remoto entrega coleções inteiras, não há o que consultar
// do lado do servidor.
package agenda

import (
	"sort"
	"strconv"
	"strings"
	"time"

	domain "github.com/dominio-lash/lumiere-api/internal/domain/appointment"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

const dateLayout = "2006-01-02"

// SortByDateTime ordena por date+time lexicográfico; correto porque
// ambos são ISO de largura fixa.
func SortByDateTime(apps []models.Appointment) []models.Appointment {
	out := append([]models.Appointment(nil), apps...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// OnDate devolve os atendimentos do dia, ordenados pelo horário.
// É a visão diária do painel.
func OnDate(apps []models.Appointment, date string) []models.Appointment {
	var out []models.Appointment
	for _, ap := range apps {
		if ap.Date == date {
			out = append(out, ap)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// InMonth devolve os atendimentos do mês do calendário, ordenados.
func InMonth(apps []models.Appointment, year int, month time.Month) []models.Appointment {
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	var out []models.Appointment
	for _, ap := range apps {
		if strings.HasPrefix(ap.Date, prefix) {
			out = append(out, ap)
		}
	}
	return SortByDateTime(out)
}

// UpcomingCount conta atendimentos de hoje em diante que não foram
// cancelados, o número do cartão "Agenda Ativa" do painel.
func UpcomingCount(apps []models.Appointment, today string) int {
	count := 0
	for _, ap := range apps {
		if ap.Date >= today && ap.Status != string(domain.StatusCanceled) {
			count++
		}
	}
	return count
}

// BirthdaysOn devolve as clientes aniversariantes da data: casa mês
// e dia do campo birthday, ignorando o ano.
func BirthdaysOn(clients []models.Client, date time.Time) []models.Client {
	m := int(date.Month())
	d := date.Day()

	var out []models.Client
	for _, cl := range clients {
		if cl.Birthday == "" {
			continue
		}
		parts := strings.SplitN(cl.Birthday, "-", 3)
		if len(parts) != 3 {
			continue
		}
		month, err1 := strconv.Atoi(parts[1])
		day, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			continue
		}
		if month == m && day == d {
			out = append(out, cl)
		}
	}
	return out
}

// History devolve o dossiê de uma cliente: seus atendimentos, do mais
// recente para o mais antigo. Resolve por clientId; o campo history
// do documento nunca é consultado.
func History(apps []models.Appointment, clientID string) []models.Appointment {
	var out []models.Appointment
	for _, ap := range apps {
		if ap.ClientID == clientID {
			out = append(out, ap)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() > out[j].SortKey()
	})
	return out
}

// ResolveClientName busca o nome atual da cliente pelo id, para quem
// preferir frescor ao valor desnormalizado gravado no atendimento.
func ResolveClientName(clients []models.Client, id string) (string, bool) {
	for _, cl := range clients {
		if cl.ID == id {
			return cl.Name, true
		}
	}
	return "", false
}

// Today formata a data de hoje no fuso da clínica no layout ISO
// usado pelos documentos.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(dateLayout)
}
