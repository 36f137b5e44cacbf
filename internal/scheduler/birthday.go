// Package scheduler roda a rotina diária de aniversariantes: cria um
// lembrete no painel de cada usuária e, quando o Twilio está
// configurado, envia a mensagem de parabéns via WhatsApp.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/dominio-lash/lumiere-api/internal/agenda"
	"github.com/dominio-lash/lumiere-api/internal/config"
	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/facade"
	"github.com/dominio-lash/lumiere-api/internal/models"
)

const greetingCategory = "Aniversários"

type BirthdayGreeter struct {
	store  docstore.Store
	facade *facade.Facade
	logger *zap.Logger
	loc    *time.Location

	twilio *twilio.RestClient
	from   string
}

func NewBirthdayGreeter(cfg *config.Config, store docstore.Store, fc *facade.Facade, logger *zap.Logger, loc *time.Location) *BirthdayGreeter {
	g := &BirthdayGreeter{
		store:  store,
		facade: fc,
		logger: logger,
		loc:    loc,
	}

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		g.twilio = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
		g.from = cfg.TwilioWhatsAppFrom
	}

	return g
}

// Start agenda a rotina para as 9h no fuso da clínica.
func (g *BirthdayGreeter) Start() *cron.Cron {
	c := cron.New(cron.WithLocation(g.loc))
	if _, err := c.AddFunc("0 9 * * *", func() { g.Run(context.Background()) }); err != nil {
		g.logger.Error("failed to schedule birthday job", zap.Error(err))
		return c
	}

	c.Start()
	g.logger.Info("birthday scheduler started")
	return c
}

// Run processa todas as usuárias conhecidas. Falhas são registradas e
// nunca interrompem as demais.
func (g *BirthdayGreeter) Run(ctx context.Context) {
	emails, err := g.store.Users(ctx)
	if err != nil {
		g.logger.Error("failed to list users", zap.Error(err))
		return
	}

	today := time.Now().In(g.loc)
	for _, email := range emails {
		g.processUser(ctx, email, today)
	}
}

func (g *BirthdayGreeter) processUser(ctx context.Context, email string, today time.Time) {
	clients, err := g.loadClients(ctx, email)
	if err != nil {
		g.logger.Warn("failed to load clients",
			zap.String("user", email), zap.Error(err))
		return
	}

	birthdays := agenda.BirthdaysOn(clients, today)
	if len(birthdays) == 0 {
		return
	}

	existing, _ := g.loadReminderTexts(ctx, email)
	profile := &models.Profile{Email: email}

	for _, cl := range birthdays {
		text := fmt.Sprintf("Aniversário de %s 🎂", cl.Name)
		if existing[text] {
			// já criado numa execução anterior do mesmo dia
			continue
		}

		if _, err := g.facade.AddReminder(ctx, profile, models.Reminder{
			Category: greetingCategory,
			Text:     text,
		}); err != nil {
			g.logger.Warn("failed to add birthday reminder",
				zap.String("user", email), zap.Error(err))
			continue
		}

		g.sendGreeting(cl)
	}
}

func (g *BirthdayGreeter) loadClients(ctx context.Context, email string) ([]models.Client, error) {
	snap, err := g.store.GetAll(ctx, docstore.UserCollection(email, docstore.ResourceClients))
	if err != nil {
		return nil, err
	}

	out := make([]models.Client, 0, len(snap))
	for id, raw := range snap {
		var cl models.Client
		if err := json.Unmarshal(raw, &cl); err != nil {
			continue
		}
		cl.ID = id
		out = append(out, cl)
	}
	return out, nil
}

func (g *BirthdayGreeter) loadReminderTexts(ctx context.Context, email string) (map[string]bool, error) {
	snap, err := g.store.GetAll(ctx, docstore.UserCollection(email, docstore.ResourceReminders))
	if err != nil {
		return map[string]bool{}, err
	}

	texts := make(map[string]bool, len(snap))
	for _, raw := range snap {
		var rem models.Reminder
		if err := json.Unmarshal(raw, &rem); err != nil {
			continue
		}
		texts[rem.Text] = true
	}
	return texts, nil
}

// sendGreeting manda o parabéns via WhatsApp quando há número e o
// Twilio está configurado; sem isso, o lembrete no painel basta.
func (g *BirthdayGreeter) sendGreeting(cl models.Client) {
	if g.twilio == nil || g.from == "" {
		return
	}

	to := cl.WhatsApp
	if to == "" {
		to = cl.Phone
	}
	if !strings.HasPrefix(to, "+") {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + g.from)
	params.SetBody(fmt.Sprintf("Feliz aniversário, %s! 🎉 Com carinho, da sua equipe de estética.", cl.Name))

	if _, err := g.twilio.Api.CreateMessage(params); err != nil {
		g.logger.Warn("failed to send birthday greeting",
			zap.String("client", cl.ID), zap.Error(err))
	}
}
