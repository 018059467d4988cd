package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
)

const assistantSystemPrompt = "Ты — учебный помощник образовательной платформы. " +
	"Отвечай кратко и по делу, помогай ученикам разбираться в материале."

// AssistantService управляет чатом с AI-помощником. Внешний вызов ограничен
// таймаутом: при недоступности провайдера ученик получает понятный ответ,
// а не зависший запрос.
type AssistantService interface {
	// Ask отправляет вопрос помощнику. sessionID nil — новая сессия.
	Ask(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID, question string) (*models.ChatMessage, *models.ChatSession, error)

	ListSessions(userID uuid.UUID) ([]models.ChatSession, error)
	ListMessages(userID, sessionID uuid.UUID) ([]models.ChatMessage, error)
}

type assistantService struct {
	repo   repository.AssistantRepository
	client *http.Client
	apiURL string
	apiKey string
	model  string
}

// NewAssistantService создает новый сервис AI-помощника
func NewAssistantService(repo repository.AssistantRepository, apiURL, apiKey, model string, timeout time.Duration) AssistantService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &assistantService{
		repo:   repo,
		client: &http.Client{Timeout: timeout},
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
	}
}

type chatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ask сохраняет вопрос, спрашивает провайдера и сохраняет ответ.
// Ошибка провайдера не теряет переписку: вопрос и ответ-заглушка
// остаются в истории.
func (s *assistantService) Ask(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID, question string) (*models.ChatMessage, *models.ChatSession, error) {
	if question == "" {
		return nil, nil, fmt.Errorf("%w: question is required", ErrValidation)
	}

	var session *models.ChatSession
	if sessionID != nil {
		existing, err := s.repo.GetSessionByID(*sessionID)
		if err != nil {
			return nil, nil, err
		}
		if existing.UserID != userID {
			return nil, nil, ErrAccessDenied
		}
		session = existing
	} else {
		session = &models.ChatSession{UserID: userID}
		if err := s.repo.CreateSession(session); err != nil {
			return nil, nil, err
		}
	}

	if err := s.repo.CreateMessage(&models.ChatMessage{
		ChatID: session.ID,
		Role:   models.ChatRoleUser,
		Text:   question,
	}); err != nil {
		return nil, nil, err
	}

	history, err := s.repo.ListMessages(session.ID)
	if err != nil {
		return nil, nil, err
	}

	answer, err := s.complete(ctx, history)
	if err != nil {
		log.Printf("Assistant request failed: %v", err)
		answer = "Помощник сейчас недоступен. Попробуйте задать вопрос чуть позже."
	}

	reply := &models.ChatMessage{
		ChatID: session.ID,
		Role:   models.ChatRoleAI,
		Text:   answer,
	}
	if err := s.repo.CreateMessage(reply); err != nil {
		return nil, nil, err
	}
	return reply, session, nil
}

// complete выполняет запрос к провайдеру chat completions
func (s *assistantService) complete(ctx context.Context, history []models.ChatMessage) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("assistant api key is not configured")
	}

	messages := make([]chatCompletionMessage, 0, len(history)+1)
	messages = append(messages, chatCompletionMessage{Role: "system", Content: assistantSystemPrompt})
	for _, msg := range history {
		role := "user"
		if msg.Role == models.ChatRoleAI {
			role = "assistant"
		}
		messages = append(messages, chatCompletionMessage{Role: role, Content: msg.Text})
	}

	body, err := json.Marshal(chatCompletionRequest{Model: s.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("assistant provider error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("assistant provider returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("assistant provider returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// ListSessions получает сессии пользователя
func (s *assistantService) ListSessions(userID uuid.UUID) ([]models.ChatSession, error) {
	return s.repo.ListSessionsByUser(userID)
}

// ListMessages получает сообщения сессии, доступ только владельцу
func (s *assistantService) ListMessages(userID, sessionID uuid.UUID) ([]models.ChatMessage, error) {
	session, err := s.repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrAccessDenied
	}
	return s.repo.ListMessages(sessionID)
}
