package automod

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Verdict is the binary judgment of the external classifier
type Verdict string

const (
	VerdictViolation Verdict = "violation"
	VerdictClean     Verdict = "clean"
)

var (
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	ErrClassifierTimeout     = errors.New("classifier timeout")
)

// Classifier submits message text for a binary moderation judgment.
// Implementations must be time-bounded; a stalled call delays only the message
// that triggered it.
type Classifier interface {
	Classify(text string) (Verdict, error)
}

// ClassifierTimeout is the hard limit for a single classification call
const ClassifierTimeout = 5 * time.Second

const defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

const moderationPrompt = "You are a content moderator. Analyze the following message and respond with \"VIOLATION\" if it contains profanity, hate speech, harassment, or inappropriate content. Respond with \"CLEAN\" if the message is appropriate. Only respond with one word."

// OpenAIClassifier asks an OpenAI chat model for a one-word moderation verdict
type OpenAIClassifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAIClassifier creates a classifier with the hard 5 second timeout
func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	return &OpenAIClassifier{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultOpenAIEndpoint,
		client:   &http.Client{Timeout: ClassifierTimeout},
	}
}

// chat completions request/response, only the fields the gateway needs

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Classify submits text and maps the one-word reply to a Verdict.
// Transport failures return ErrClassifierUnavailable, deadline hits return
// ErrClassifierTimeout; the caller treats both as a clean verdict.
func (c *OpenAIClassifier) Classify(text string) (Verdict, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: moderationPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:   10,
		Temperature: 0,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return VerdictClean, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return VerdictClean, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return VerdictClean, fmt.Errorf("%w: %v", ErrClassifierTimeout, err)
		}
		return VerdictClean, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VerdictClean, fmt.Errorf("%w: status %d", ErrClassifierUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return VerdictClean, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return VerdictClean, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	if len(parsed.Choices) == 0 {
		return VerdictClean, nil
	}

	if strings.TrimSpace(parsed.Choices[0].Message.Content) == "VIOLATION" {
		return VerdictViolation, nil
	}
	return VerdictClean, nil
}
