package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockProvider calls an Amazon Titan text model through Bedrock.
type BedrockProvider struct {
	client bedrockInvoker
	model  string
}

func NewBedrockProvider(ctx context.Context, cfg Config) (*BedrockProvider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("bedrock: load aws config: %w", err)
	}
	return newBedrockProvider(bedrockruntime.NewFromConfig(awsCfg), cfg.Model), nil
}

func newBedrockProvider(client bedrockInvoker, model string) *BedrockProvider {
	if model == "" {
		model = defaultBedrockModel
	}
	return &BedrockProvider{client: client, model: model}
}

type titanRequest struct {
	InputText string `json:"inputText"`
}

type titanResponse struct {
	InputTextTokenCount int `json:"inputTextTokenCount"`
	Results             []struct {
		TokenCount       int    `json:"tokenCount"`
		OutputText       string `json:"outputText"`
		CompletionReason string `json:"completionReason"`
	} `json:"results"`
}

func (p *BedrockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(titanRequest{InputText: prompt})
	if err != nil {
		return "", fmt.Errorf("bedrock: marshal request: %w", err)
	}

	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.model),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("bedrock: invoke %s: %w", p.model, err)
	}

	var resp titanResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("bedrock: decode response: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", errors.New("bedrock: response has no results")
	}
	return resp.Results[0].OutputText, nil
}

func (p *BedrockProvider) Close() error {
	return nil
}
