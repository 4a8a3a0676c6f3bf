package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/google/uuid"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/config"
)

// noResponse is returned when the runtime reply matches none of the known shapes.
const noResponse = "No response"

// AgentReply is the normalized result of one agent invocation.
type AgentReply struct {
	Output    string
	SessionID string
}

// AgentInvoker is the part of the agent gateway that callers (handlers,
// the job runner) depend on.
type AgentInvoker interface {
	Invoke(ctx context.Context, prompt, sessionID string) (*AgentReply, error)
}

// RequestSigner attaches a cloud signature to an outbound request.
// Injected so tests can substitute the ambient credential chain.
type RequestSigner interface {
	Sign(ctx context.Context, req *http.Request, payloadHash string) error
}

type sigV4Signer struct {
	region string
	signer *v4.Signer
}

// NewSigV4Signer returns a RequestSigner backed by the AWS default
// credential chain (env, shared config, task/instance role).
func NewSigV4Signer(region string) RequestSigner {
	return &sigV4Signer{
		region: region,
		signer: v4.NewSigner(),
	}
}

func (s *sigV4Signer) Sign(ctx context.Context, req *http.Request, payloadHash string) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(s.region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve AWS credentials: %w", err)
	}

	return s.signer.SignHTTP(ctx, creds, req, payloadHash, "bedrock-agentcore", s.region, time.Now())
}

// AgentService invokes the deployed AgentCore runtime over its HTTPS API.
type AgentService struct {
	config     *config.AgentConfig
	signer     RequestSigner
	httpClient *http.Client
	baseURL    string
}

func NewAgentService(cfg *config.AgentConfig, signer RequestSigner) *AgentService {
	return &AgentService{
		config: cfg,
		signer: signer,
		// No client timeout: report generation can run for minutes and the
		// async job path must not cut it short.
		httpClient: &http.Client{},
		baseURL:    fmt.Sprintf("https://bedrock-agentcore.%s.amazonaws.com", cfg.Region),
	}
}

type invokePayload struct {
	Prompt string `json:"prompt"`
}

// Invoke sends the prompt to the agent runtime and normalizes the reply.
// An empty sessionID gets a generated one; the runtime requires session
// IDs of at least 33 characters.
func (s *AgentService) Invoke(ctx context.Context, prompt, sessionID string) (*AgentReply, error) {
	if sessionID == "" {
		sessionID = newSessionID()
	}

	payload, err := json.Marshal(invokePayload{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	invokeURL := fmt.Sprintf("%s/runtimes/%s/invocations", s.baseURL, url.QueryEscape(s.config.RuntimeARN))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, invokeURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Amzn-Bedrock-AgentCore-Runtime-Session-Id", sessionID)

	sum := sha256.Sum256(payload)
	if err := s.signer.Sign(ctx, req, hex.EncodeToString(sum[:])); err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke agent runtime: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("agent runtime returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	output, err := normalizeReply(body)
	if err != nil {
		return nil, err
	}

	return &AgentReply{Output: output, SessionID: sessionID}, nil
}

// normalizeReply extracts the reply text from the runtime response. The
// runtime answers in several shapes; they are tried in a fixed priority
// order: content[0].text, then output, response, message.
func normalizeReply(body []byte) (string, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("failed to parse agent response: %w, body: %s", err, string(body))
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return noResponse, nil
	}

	if content, ok := obj["content"].([]any); ok && len(content) > 0 {
		if first, ok := content[0].(map[string]any); ok {
			if text, ok := first["text"].(string); ok && text != "" {
				return text, nil
			}
		}
	}
	for _, key := range []string{"output", "response", "message"} {
		if text, ok := obj[key].(string); ok && text != "" {
			return text, nil
		}
	}

	return noResponse, nil
}

func newSessionID() string {
	return fmt.Sprintf("session-%d-%s", time.Now().UnixMilli(), uuid.New().String())
}
