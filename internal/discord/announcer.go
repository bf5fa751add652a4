// Package discord posts settlement results to a Discord channel through a webhook.
package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/logger"
	"github.com/osse101/questledger/internal/worker"
)

// WebhookExecutor is the part of *discordgo.Session the announcer needs
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// JobQueue runs webhook posts off the publishing goroutine
type JobQueue interface {
	TryEnqueue(job worker.Job) bool
}

// Announcer posts a summary embed for every settled period
type Announcer struct {
	executor  WebhookExecutor
	webhookID string
	token     string
	printer   *message.Printer
	queue     JobQueue
}

// NewAnnouncer creates an announcer backed by a token-less discordgo session.
// Webhook calls authenticate with the webhook token, not a bot token.
func NewAnnouncer(webhookID, token string) (*Announcer, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateSession, err)
	}
	return NewAnnouncerWithExecutor(session, webhookID, token)
}

// NewAnnouncerWithExecutor creates an announcer over any webhook executor
func NewAnnouncerWithExecutor(executor WebhookExecutor, webhookID, token string) (*Announcer, error) {
	if webhookID == "" || token == "" {
		return nil, errors.New(ErrMsgMissingCredentials)
	}
	return &Announcer{
		executor:  executor,
		webhookID: webhookID,
		token:     token,
		printer:   message.NewPrinter(language.English),
	}, nil
}

// WithQueue makes the announcer post asynchronously through q.
// When q is full the post happens inline.
func (a *Announcer) WithQueue(q JobQueue) *Announcer {
	a.queue = q
	return a
}

// Register subscribes the announcer to settlement events
func (a *Announcer) Register(bus event.Bus) {
	bus.Subscribe(event.PeriodSettled, a.HandlePeriodSettled)
	logger.Info(LogMsgAnnouncerRegistered)
}

// HandlePeriodSettled posts the distribution. Failures are logged and swallowed:
// a retried event would post the same announcement twice.
func (a *Announcer) HandlePeriodSettled(ctx context.Context, evt event.Event) error {
	dist, err := event.DecodePayload[domain.Distribution](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "error", err)
		return nil
	}

	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{a.BuildEmbed(dist)},
	}

	post := worker.JobFunc(func(ctx context.Context) error {
		return a.post(ctx, dist.Period, params)
	})
	if a.queue != nil && a.queue.TryEnqueue(post) {
		return nil
	}

	_ = post(ctx)
	return nil
}

func (a *Announcer) post(ctx context.Context, period uint64, params *discordgo.WebhookParams) error {
	log := logger.FromContext(ctx)
	if _, err := a.executor.WebhookExecute(a.webhookID, a.token, false, params); err != nil {
		log.Error(LogMsgAnnounceFailed, "period", period, "error", err)
		return err
	}
	log.Info(LogMsgAnnounced, "period", period)
	return nil
}

// BuildEmbed renders a distribution as a Discord embed
func (a *Announcer) BuildEmbed(dist domain.Distribution) *discordgo.MessageEmbed {
	trigger := TriggerScheduled
	color := ColorScheduled
	if dist.Forced {
		trigger = TriggerForced
		color = ColorForced
	}

	winners := 0
	for _, p := range dist.Payouts {
		if p.Amount > 0 {
			winners++
		}
	}

	description := DescNoWinners
	if dist.Total > 0 {
		description = a.printer.Sprintf(DescSettlementFormat, dist.Total, winners, dist.PoolBefore)
	} else {
		color = ColorEmpty
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf(TitleSettlementFormat, dist.Period),
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterQuestLedger,
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldTrigger, Value: cases.Title(language.English).String(trigger), Inline: true},
			{Name: FieldDust, Value: a.printer.Sprintf("%d", dist.Dust), Inline: true},
		},
	}
	if !dist.SettledAt.IsZero() {
		embed.Timestamp = dist.SettledAt.UTC().Format(time.RFC3339)
	}

	for _, p := range dist.Payouts {
		if len(embed.Fields) == MaxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf(FieldWinnerNameFormat, p.Position+1, p.Player),
			Value: a.printer.Sprintf(FieldWinnerValueFormat, p.Amount, float64(p.Share)/100),
		})
	}

	return embed
}
