package handler

import (
	"net/http"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/quest"
)

// CompleteQuestRequest pays the reward of a catalog quest
type CompleteQuestRequest struct {
	Player      string `json:"player" validate:"required,player"`
	CharacterID string `json:"character_id" validate:"required,player"`
	QuestKey    string `json:"quest_key" validate:"required,max=64"`
}

// CompleteBattleRequest pays the reward of a finished battle
type CompleteBattleRequest struct {
	Player        string `json:"player" validate:"required,player"`
	CharacterID   string `json:"character_id" validate:"required,player"`
	OpponentPower uint64 `json:"opponent_power"`
	Won           bool   `json:"won"`
}

// QuestHandler serves the quest and battle endpoints
type QuestHandler struct {
	service quest.Service
}

// NewQuestHandler creates a new QuestHandler
func NewQuestHandler(service quest.Service) *QuestHandler {
	return &QuestHandler{service: service}
}

// HandleListQuests returns the quest catalog
// @Summary Quest catalog
// @Tags quests
// @Produce json
// @Success 200 {array} domain.QuestTemplate
// @Router /quests [get]
func (h *QuestHandler) HandleListQuests(w http.ResponseWriter, r *http.Request) {
	quests := h.service.Catalog()
	if quests == nil {
		quests = []domain.QuestTemplate{}
	}
	respondJSON(w, http.StatusOK, quests)
}

// HandleCompleteQuest pays a quest reward and scores it
// @Summary Complete a quest
// @Description Credits the reward minus the pool fee and applies the full reward as points
// @Tags quests
// @Accept json
// @Produce json
// @Param request body CompleteQuestRequest true "Quest completion"
// @Success 200 {object} domain.RewardResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quests/complete [post]
func (h *QuestHandler) HandleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	var req CompleteQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete quest"); err != nil {
		return
	}

	result, err := h.service.CompleteQuest(r.Context(), req.Player, req.CharacterID, req.QuestKey)
	if err != nil {
		respondServiceError(w, r, "complete_quest", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleCompleteBattle pays a battle reward and scores it
// @Summary Complete a battle
// @Tags quests
// @Accept json
// @Produce json
// @Param request body CompleteBattleRequest true "Battle result"
// @Success 200 {object} domain.RewardResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /battles/complete [post]
func (h *QuestHandler) HandleCompleteBattle(w http.ResponseWriter, r *http.Request) {
	var req CompleteBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete battle"); err != nil {
		return
	}

	result, err := h.service.CompleteBattle(r.Context(), req.Player, req.CharacterID, req.OpponentPower, req.Won)
	if err != nil {
		respondServiceError(w, r, "complete_battle", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
