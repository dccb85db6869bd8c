package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// relayPath is the generation endpoint on the public relay.
const relayPath = "/gai/gene"

// RelayGenerator forwards the raw generation parameters to a public relay
// service that holds the model credential on the caller's behalf.
type RelayGenerator struct {
	baseURL    string
	httpClient *http.Client
}

func NewRelayGenerator(baseURL string) *RelayGenerator {
	return &RelayGenerator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *RelayGenerator) Name() string { return "relay" }

type relayRequest struct {
	Diff        string `json:"diff"`
	Lang        string `json:"lang"`
	Type        string `json:"type,omitempty"`
	Scope       string `json:"scope,omitempty"`
	PreviousMsg string `json:"previousMsg,omitempty"`
}

type relayResponse struct {
	Message string `json:"message"`
}

func (g *RelayGenerator) Generate(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(relayRequest{
		Diff:        req.Diff,
		Lang:        req.Language,
		Type:        req.CommitType,
		Scope:       req.Scope,
		PreviousMsg: req.PreviousMessage,
	})
	if err != nil {
		return "", &GenerationError{Backend: g.Name(), Reason: "request encoding", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+relayPath, bytes.NewReader(payload))
	if err != nil {
		return "", &GenerationError{Backend: g.Name(), Reason: "request construction", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", &GenerationError{Backend: g.Name(), Reason: "relay unreachable", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Backend: g.Name(), Reason: "reading relay response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &GenerationError{
			Backend: g.Name(),
			Reason:  fmt.Sprintf("relay returned %s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}

	var parsed relayResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &GenerationError{Backend: g.Name(), Reason: "malformed relay response", Err: err}
	}

	message := strings.TrimSpace(parsed.Message)
	if message == "" {
		return "", &GenerationError{Backend: g.Name(), Reason: "relay returned an empty message"}
	}
	return message, nil
}
