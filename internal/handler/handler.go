package handler

import (
	"sync"

	"hanbot/internal/dictionary"
	"hanbot/internal/domain"
	"hanbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	cardService  *service.CardService
	studyService *service.StudyService
	dictionary   *dictionary.Client
	logger       *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-user locks to serialize callback processing
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	cardService *service.CardService,
	studyService *service.StudyService,
	dict *dictionary.Client,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		cardService:   cardService,
		studyService:  studyService,
		dictionary:    dict,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/quiz", h.handleQuizMenu)
	h.bot.Handle("/flashcards", h.handleFlashcards)
	h.bot.Handle("/progress", h.handleProgress)

	// Text messages (dictionary search or label input)
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnQuiz, h.handleQuizMenu)
	h.bot.Handle(&btnFlashcards, h.handleFlashcards)
	h.bot.Handle(&btnProgress, h.handleProgress)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// userLock returns the per-user mutex, creating it on first use.
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// Inline keyboard buttons
var (
	btnQuiz = tele.Btn{
		Unique: "quiz_menu",
		Text:   "🎯 Quiz",
	}
	btnFlashcards = tele.Btn{
		Unique: "flashcards",
		Text:   "🗂 My flashcards",
	}
	btnProgress = tele.Btn{
		Unique: "progress",
		Text:   "📈 Progress",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnQuiz),
		menu.Row(btnFlashcards),
		menu.Row(btnProgress),
	)
	return menu
}
