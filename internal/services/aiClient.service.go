package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"betsmith/config"
	"betsmith/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// ExtractedIntent is the best-effort structured output of the external
// entity extractor. Absent fields are valid.
type ExtractedIntent struct {
	League  *models.League  `json:"league,omitempty"`
	BetType *models.BetType `json:"betType,omitempty"`
	Subject string          `json:"subject,omitempty"`
}

// AIClientService talks to the opaque external AI collaborators: the
// free-text entity extractor and the recommendation-text generator. It
// holds no prompt logic of its own.
type AIClientService struct {
	client  *http.Client
	baseURL string
	log     logger.Logger
}

func NewAIClientService(config config.Config) *AIClientService {
	return &AIClientService{
		client: &http.Client{
			Timeout: time.Duration(config.AIAPITimeoutSecs) * time.Second,
		},
		baseURL: config.AIAPIURL,
		log:     logger.New("aiClientService"),
	}
}

func (s *AIClientService) Extract(ctx context.Context, text string) (ExtractedIntent, error) {
	log := s.log.Function("Extract")

	var intent ExtractedIntent
	err := s.post(ctx, "/extract", map[string]any{"prompt": text}, &intent)
	if err != nil {
		return ExtractedIntent{}, log.Err("entity extraction failed", err)
	}

	return intent, nil
}

func (s *AIClientService) GenerateText(
	ctx context.Context,
	prompt string,
	structuredContext any,
) (string, error) {
	log := s.log.Function("GenerateText")

	var response struct {
		Text string `json:"text"`
	}
	err := s.post(ctx, "/generate", map[string]any{
		"prompt":  prompt,
		"context": structuredContext,
	}, &response)
	if err != nil {
		return "", log.Err("text generation failed", err)
	}

	return response.Text, nil
}

func (s *AIClientService) post(ctx context.Context, path string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ai service returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	return json.Unmarshal(data, result)
}
