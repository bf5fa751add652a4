package discord

// Embed colours
const (
	ColorScheduled = 0x2ecc71 // Green
	ColorForced    = 0xe67e22 // Orange
	ColorEmpty     = 0x95a5a6 // Gray
)

// Embed text
const (
	FooterQuestLedger      = "QuestLedger"
	TitleSettlementFormat  = "🏆 Period %d settled"
	DescSettlementFormat   = "**%d** paid to %d winners from a pool of **%d**."
	DescNoWinners          = "No rewards were paid this period."
	FieldTrigger           = "Trigger"
	FieldDust              = "Dust"
	FieldWinnerNameFormat  = "#%d %s"
	FieldWinnerValueFormat = "%d (%.2f%%)"
	TriggerScheduled       = "scheduled"
	TriggerForced          = "forced"
)

// MaxEmbedFields is Discord's limit on fields per embed
const MaxEmbedFields = 25

// Log messages
const (
	LogMsgAnnouncerRegistered = "Discord settlement announcer registered"
	LogMsgAnnounceFailed      = "Failed to post settlement to Discord webhook"
	LogMsgAnnounced           = "Settlement posted to Discord"
	LogMsgInvalidPayload      = "Invalid settlement payload for Discord announcement"
)

// Error messages
const (
	ErrMsgMissingCredentials = "discord webhook id and token are required"
	ErrMsgCreateSession      = "failed to create discord session"
)
