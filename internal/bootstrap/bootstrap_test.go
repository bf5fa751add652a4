package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/questledger/internal/config"
	"github.com/osse101/questledger/internal/discord"
	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/history"
	"github.com/osse101/questledger/internal/ledger"
	"github.com/osse101/questledger/internal/sse"
)

type MockWebhookExecutor struct {
	mock.Mock
}

func (m *MockWebhookExecutor) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(webhookID, token, wait, data)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func TestInitializeEventSystem(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{DeadLetterPath: filepath.Join(dir, "nested", "deadletter.jsonl")}

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, publisher)
	t.Cleanup(func() { _ = publisher.Shutdown(context.Background()) })

	_, err = os.Stat(filepath.Join(dir, "nested"))
	assert.NoError(t, err, "dead-letter directory is created")
}

func TestInitializeRepositories_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageMemory, CharacterCacheSize: 8, CharacterCacheTTL: time.Minute}

	repos, err := InitializeRepositories(context.Background(), cfg)
	require.NoError(t, err)
	defer repos.Close()

	assert.Nil(t, repos.DB)
	ctx := context.Background()
	require.NoError(t, repos.Characters.UpsertCharacter(ctx, "alice", domain.CharacterStats{CharacterID: "c1", Qualifying: true}))
	owns, err := repos.Characters.OwnsQualifyingAsset(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, owns)

	require.NoError(t, repos.Accounts.Credit(ctx, "alice", 10))
	balance, err := repos.Accounts.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), balance)
}

func TestInitializeRepositories_UnknownStorage(t *testing.T) {
	_, err := InitializeRepositories(context.Background(), &config.Config{Storage: "redis"})
	assert.ErrorContains(t, err, ErrMsgUnknownStorage)
}

func TestLoadQuestCatalog(t *testing.T) {
	dir := t.TempDir()

	catalog, err := LoadQuestCatalog(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, catalog)

	path := filepath.Join(dir, "quests.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1","quests":[{"quest_key":"patrol","base_reward":10}]}`), 0600))
	catalog, err = LoadQuestCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "patrol", catalog[0].QuestKey)

	require.NoError(t, os.WriteFile(path, []byte(`{"quests":[{"quest_key":"patrol"}]}`), 0600))
	_, err = LoadQuestCatalog(path)
	assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
}

func TestRegisterEventHandlers(t *testing.T) {
	bus := event.NewMemoryBus()
	historySvc := history.NewService(ledger.NewMemoryHistory())

	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()
	client := hub.Register([]string{sse.EventTypePeriodSettled})
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	exec := &MockWebhookExecutor{}
	exec.On("WebhookExecute", "123", "token", false, mock.Anything).Return(nil, nil)
	announcer, err := discord.NewAnnouncerWithExecutor(exec, "123", "token")
	require.NoError(t, err)

	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{
		EventBus:       bus,
		HistoryService: historySvc,
		SSEHub:         hub,
		Announcer:      announcer,
	}))

	dist := domain.Distribution{ID: "d1", Period: 4, Total: 90, Payouts: []domain.Payout{{Player: "alice", Amount: 90}}}
	require.NoError(t, bus.Publish(context.Background(), event.NewPeriodSettledEvent(dist)))

	stored, err := historySvc.GetSettlement(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), stored.Total)

	select {
	case evt := <-client.EventChannel:
		assert.Equal(t, sse.EventTypePeriodSettled, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("settlement was not streamed")
	}

	exec.AssertNumberOfCalls(t, "WebhookExecute", 1)
}

func TestRegisterEventHandlers_DiscordDisabled(t *testing.T) {
	err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:       event.NewMemoryBus(),
		HistoryService: history.NewService(ledger.NewMemoryHistory()),
		Config:         &config.Config{},
	})
	assert.NoError(t, err)
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{"session_2026-01-01_00-00-00.log", "session_2026-01-02_00-00-00.log", "session_2026-01-03_00-00-00.log", "notes.txt"}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0600))
	}

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{"session_2026-01-02_00-00-00.log", "session_2026-01-03_00-00-00.log", "notes.txt"}, left)
}

func TestGracefulShutdown_SkipsNilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
