package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	wfmodel "ad-copy-ai-api/internal/workflow/model"
	wfnode "ad-copy-ai-api/internal/workflow/node"
	workflowport "ad-copy-ai-api/internal/workflow/port"
	workflowprompt "ad-copy-ai-api/internal/workflow/prompt"
	"ad-copy-ai-api/pkg/logger"
)

const (
	// 采样温度固定，保持多次生成的风格一致
	marketingTemperature float32 = 0.7

	// 每条文案预留的输出 token 预算与总上限
	tokensPerCopy = 1000
	maxTokensCap  = 4000
)

type MarketingChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.MarketingGenerateInput, *schema.Message]
	chainErr  error
}

func NewMarketingChain(factory workflowport.ChatModelFactory) *MarketingChain {
	return &MarketingChain{factory: factory}
}

func (c *MarketingChain) Invoke(ctx context.Context, in *wfmodel.MarketingGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil || in.Request == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type marketingChainState struct {
	In       *wfmodel.MarketingGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *MarketingChain) getChain() (compose.Runnable[*wfmodel.MarketingGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *MarketingChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.MarketingGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.MarketingGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.MarketingGenerateInput) (*marketingChainState, error) {
			if in == nil || in.Request == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &marketingChainState{In: in}, nil
		}),
		compose.WithNodeName("marketing.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *marketingChainState) (*marketingChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs, err := formatMarketingMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("marketing.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *marketingChainState) (*marketingChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			chatModel, err := c.factory.Get(ctx, strings.TrimSpace(st.In.Provider))
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildMarketingModelOptions(st.In, true)...)
			if err != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
					"provider", strings.TrimSpace(st.In.Provider),
					"model", strings.TrimSpace(st.In.Model),
					"error", err.Error(),
				)
				outMsg, err = chatModel.Generate(ctx, st.Messages, buildMarketingModelOptions(st.In, false)...)
			}
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("marketing.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *marketingChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("marketing.finalize"),
	)

	return chain.Compile(ctx)
}

var defaultPromptRegistry = workflowprompt.NewRegistry()

func formatMarketingMessages(ctx context.Context, in *wfmodel.MarketingGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptMarketingCopyV1)
	if err != nil {
		return nil, err
	}
	req := in.Request
	vars := map[string]any{
		"value_proposition": strings.TrimSpace(req.ValueProposition),
		"targeting_block":   wfnode.BuildTargetingBlock(req.Targeting),
		"style_block":       wfnode.BuildStyleBlock(req.Options),
		"platform_block":    wfnode.BuildPlatformBlock(req.Platform),
		"extras_block":      wfnode.BuildExtrasBlock(req.Options),
		"count":             req.Options.Count,
	}
	return tpl.Format(ctx, vars)
}

// MaxTokensFor 按请求条数计算输出 token 预算
func MaxTokensFor(count int) int {
	if count < 1 {
		count = 1
	}
	tokens := tokensPerCopy * count
	if tokens > maxTokensCap {
		return maxTokensCap
	}
	return tokens
}

func buildMarketingModelOptions(in *wfmodel.MarketingGenerateInput, enableSchema bool) []model.Option {
	opts := []model.Option{
		model.WithTemperature(marketingTemperature),
		model.WithMaxTokens(MaxTokensFor(in.Request.Options.Count)),
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}

	if enableSchema {
		opts = append(opts, openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   "marketing_copies",
					"strict": false,
					"schema": marketingJSONSchema(),
				},
			},
		}))
	}

	return opts
}

func marketingJSONSchema() map[string]any {
	// 说明：此处 schema 以“最小可用”为目标，避免过度约束导致模型输出失败。
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"marketingCopies"},
		"properties": map[string]any{
			"marketingCopies": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []any{"content"},
					"properties": map[string]any{
						"content":        map[string]any{"type": "string"},
						"hashtags":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"characterCount": map[string]any{"type": "integer"},
					},
				},
			},
		},
	}
}
