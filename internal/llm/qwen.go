package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"careerai/internal/logger"
)

const (
	// DashScope's OpenAI-compatible endpoint.
	defaultQwenAPIURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	defaultQwenModel  = "qwen-plus"
)

// QwenChatModel talks to Qwen through DashScope's OpenAI-compatible API and
// implements eino's model.ToolCallingChatModel so it can slot into eino
// pipelines unchanged.
type QwenChatModel struct {
	apiKey     string
	modelName  string
	apiURL     string
	httpClient *http.Client
}

// NewQwenChatModel builds the underlying chat model. modelName and apiURL
// default to qwen-plus on DashScope.
func NewQwenChatModel(apiKey, modelName, apiURL string) (*QwenChatModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("qwen: API key is required")
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultQwenModel
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultQwenAPIURL
	}
	return &QwenChatModel{
		apiKey:     apiKey,
		modelName:  modelName,
		apiURL:     apiURL,
		httpClient: &http.Client{},
	}, nil
}

type qwenChatRequest struct {
	Model    string            `json:"model"`
	Messages []*schema.Message `json:"messages"`

	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type qwenChatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type qwenChatResponse struct {
	ID      string           `json:"id"`
	Model   string           `json:"model"`
	Choices []qwenChatChoice `json:"choices"`
}

// Generate implements model.ToolCallingChatModel. Common eino options for
// max tokens and temperature are honored; everything else is ignored.
func (q *QwenChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	reqPayload := qwenChatRequest{
		Model:    q.modelName,
		Messages: messages,
	}

	common := model.GetCommonOptions(&model.Options{}, options...)
	if common.MaxTokens != nil {
		reqPayload.MaxTokens = *common.MaxTokens
	}
	if common.Temperature != nil {
		reqPayload.Temperature = float64(*common.Temperature)
	}

	jsonData, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("qwen: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, q.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("qwen: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+q.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := q.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("qwen: send request: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("qwen: read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qwen: API request failed, status %s: %s", httpResp.Status, string(bodyBytes))
	}

	var resp qwenChatResponse
	if err := json.Unmarshal(bodyBytes, &resp); err != nil {
		return nil, fmt.Errorf("qwen: decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("qwen: response has no choices")
	}

	apiMessage := resp.Choices[0].Message
	content := ""
	if apiMessage.Content != nil {
		content = *apiMessage.Content
	}

	role := schema.RoleType(apiMessage.Role)
	if role == "" {
		role = schema.Assistant
	}
	return &schema.Message{Role: role, Content: content}, nil
}

// Stream implements model.ToolCallingChatModel. The chain only needs
// single-shot completions, so streaming stays unimplemented.
func (q *QwenChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("qwen: streaming is not implemented")
}

// WithTools implements model.ToolCallingChatModel. Tool calling is not used
// by the analysis prompts; binding tools is rejected rather than silently
// ignored.
func (q *QwenChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	if len(tools) > 0 {
		return nil, fmt.Errorf("qwen: tool calling is not supported")
	}
	return q, nil
}

var _ model.ToolCallingChatModel = (*QwenChatModel)(nil)

// QwenProvider adapts QwenChatModel to the Provider interface. It sits last
// in the chain: free tier, tight rate limits.
type QwenProvider struct {
	model model.ToolCallingChatModel
}

// NewQwenProvider wraps any eino chat model as a chain provider. Wrapping an
// already rate-limited model is the expected use.
func NewQwenProvider(m model.ToolCallingChatModel) *QwenProvider {
	return &QwenProvider{model: m}
}

func (p *QwenProvider) Name() string { return "qwen" }

func (p *QwenProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	var callOpts []model.Option
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, model.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, model.WithTemperature(float32(opts.Temperature)))
	}

	msg, err := p.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, callOpts...)
	if err != nil {
		return "", err
	}
	if msg == nil {
		logger.Warn().Msg("qwen returned a nil message")
		return "", fmt.Errorf("qwen: empty message")
	}
	return msg.Content, nil
}
