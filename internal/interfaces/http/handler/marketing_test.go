package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-copy-ai-api/internal/application/marketing"
	"ad-copy-ai-api/internal/application/quota"
	"ad-copy-ai-api/internal/config"
	"ad-copy-ai-api/internal/interfaces/http/dto"
	"ad-copy-ai-api/internal/interfaces/http/handler"
	"ad-copy-ai-api/internal/interfaces/http/router"
)

// fakeChatModel 替身模型，按预设返回内容或错误
type fakeChatModel struct {
	mu             sync.Mutex
	calls          int
	content        string
	err            error
	failFormatOnce bool
}

func (m *fakeChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failFormatOnce {
		m.failFormatOnce = false
		return nil, errors.New("response_format is not supported by this model")
	}
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{
		Role:    schema.Assistant,
		Content: m.content,
	}, nil
}

func (m *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func (m *fakeChatModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type fakeFactory struct {
	model *fakeChatModel
}

func (f *fakeFactory) Get(_ context.Context, _ string) (model.BaseChatModel, error) {
	return f.model, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "ad-copy-ai-api", Env: "test"},
		LLM: config.LLMConfig{
			DefaultProvider: "openai",
			Providers: map[string]config.ProviderConfig{
				"openai": {APIKey: "test-key", Model: "gpt-4o-mini"},
			},
		},
		Security: config.SecurityConfig{
			RateLimit: config.RateLimitConfig{Enabled: false},
		},
	}
}

func newTestRouter(cfg *config.Config, fake *fakeChatModel) *gin.Engine {
	gin.SetMode(gin.TestMode)

	generator := marketing.NewCopyGenerator(&fakeFactory{model: fake})
	limiter := quota.NewFixedWindowLimiter(quota.NewMemoryStore(), cfg.Security.RateLimit.Limit, cfg.Security.RateLimit.Window)
	r := router.New(cfg,
		limiter,
		handler.NewMarketingHandler(cfg, generator),
		handler.NewHealthHandler(nil),
	)
	return r.Engine()
}

const validBody = `{
	"valueProposition": "건강한 식습관으로 더 멋진 삶을 시작하세요",
	"targeting": {"gender": "all", "ageGroups": ["20s", "30s"], "region": "seoul", "interests": ["건강"]},
	"platform": "instagram",
	"generationOptions": {"length": "short", "tone": "casual", "ctaStyle": "direct", "count": 2}
}`

func postGenerate(engine *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate-marketing", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type generateResponse struct {
	Success bool                      `json:"success"`
	Data    dto.GenerateMarketingData `json:"data"`
	Error   *string                   `json:"error"`
}

func TestGenerate_Success(t *testing.T) {
	fake := &fakeChatModel{
		content: `{"marketingCopies": [
			{"content": "지금 시작하세요!", "hashtags": ["#시작", "#오늘"]},
			{"content": "건강한 하루", "hashtags": []}
		]}`,
	}
	engine := newTestRouter(testConfig(), fake)

	w := postGenerate(engine, validBody, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)

	require.Len(t, resp.Data.MarketingCopies, 2)
	first := resp.Data.MarketingCopies[0]
	assert.Equal(t, "지금 시작하세요!", first.Content)
	assert.Equal(t, []string{"#시작", "#오늘"}, first.Hashtags)
	assert.Equal(t, "instagram", first.Platform)
	assert.Equal(t, 9, first.CharacterCount)
	assert.Equal(t, "gpt-4o-mini", first.Model)
	assert.True(t, strings.HasPrefix(first.ID, "copy_"))
	assert.True(t, strings.HasPrefix(resp.Data.RequestID, "req_"))
	assert.Equal(t, resp.Data.RequestID, first.RequestID)

	// 空 해시태그数组序列化为 []，不是 null
	assert.Equal(t, []string{}, resp.Data.MarketingCopies[1].Hashtags)

	assert.Equal(t, 1, fake.callCount())
}

func TestGenerate_ValidationFailureSkipsUpstream(t *testing.T) {
	fake := &fakeChatModel{content: "{}"}
	engine := newTestRouter(testConfig(), fake)

	body := `{
		"valueProposition": "짧음",
		"targeting": {"gender": "all", "ageGroups": ["20s"], "region": "all", "interests": ["건강"]},
		"platform": "instagram",
		"generationOptions": {"length": "short", "tone": "casual", "ctaStyle": "direct", "count": 2}
	}`
	w := postGenerate(engine, body, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "가치 제언은 최소 10자 이상")

	// 校验失败时绝不触发上游调用
	assert.Equal(t, 0, fake.callCount())
}

func TestGenerate_MalformedJSON(t *testing.T) {
	fake := &fakeChatModel{content: "{}"}
	engine := newTestRouter(testConfig(), fake)

	w := postGenerate(engine, `{"valueProposition": `, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, fake.callCount())
}

func TestGenerate_UnknownPlatformFallsBackToGeneral(t *testing.T) {
	fake := &fakeChatModel{content: `{"marketingCopies": [{"content": "틱톡에도 어울리는 문구"}]}`}
	engine := newTestRouter(testConfig(), fake)

	body := strings.Replace(validBody, `"instagram"`, `"tiktok"`, 1)
	w := postGenerate(engine, body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.MarketingCopies, 1)
	assert.Equal(t, "general", resp.Data.MarketingCopies[0].Platform)
}

func TestGenerate_ProseFallback(t *testing.T) {
	fake := &fakeChatModel{content: "죄송하지만 JSON으로 출력하지 못했습니다. 지금 바로 시작해보세요!"}
	engine := newTestRouter(testConfig(), fake)

	w := postGenerate(engine, validBody, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.MarketingCopies, 1)
	assert.Equal(t, fake.content, resp.Data.MarketingCopies[0].Content)
	assert.Equal(t, []string{}, resp.Data.MarketingCopies[0].Hashtags)
}

func TestGenerate_SchemaUnsupportedRetriesWithoutSchema(t *testing.T) {
	fake := &fakeChatModel{
		content:        `{"marketingCopies": [{"content": "재시도 성공 문구"}]}`,
		failFormatOnce: true,
	}
	engine := newTestRouter(testConfig(), fake)

	w := postGenerate(engine, validBody, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, fake.callCount())
}

func TestGenerate_UpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		upstream   error
		wantStatus int
	}{
		{
			name:       "认证失败",
			upstream:   errors.New("failed to chat: status code: 401, message: Incorrect API key provided"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "上游限流",
			upstream:   errors.New("failed to chat: status code: 429, message: Rate limit reached"),
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "上游不可用",
			upstream:   errors.New("failed to chat: status code: 503, message: The engine is currently overloaded"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "连接被拒",
			upstream:   errors.New("dial tcp 10.0.0.1:443: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "无法归类",
			upstream:   errors.New("something unexpected happened"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeChatModel{err: tt.upstream}
			engine := newTestRouter(testConfig(), fake)

			w := postGenerate(engine, validBody, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			// 上游原始报文不回显给客户端
			assert.NotContains(t, resp.Error, "status code")
			assert.NotContains(t, resp.Error, "API key")
		})
	}
}

func TestGenerate_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimit = config.RateLimitConfig{
		Enabled: true,
		Limit:   2,
		Window:  time.Minute,
	}
	fake := &fakeChatModel{content: `{"marketingCopies": [{"content": "한도 내 문구"}]}`}
	engine := newTestRouter(cfg, fake)

	headers := map[string]string{"X-Forwarded-For": "203.0.113.7"}

	first := postGenerate(engine, validBody, headers)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := postGenerate(engine, validBody, headers)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := postGenerate(engine, validBody, headers)
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, third.Header().Get("Retry-After"))

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(third.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "요청이 너무 많습니다")

	// 被限流的请求不触发上游调用
	assert.Equal(t, 2, fake.callCount())

	// 其他客户端不受影响
	other := postGenerate(engine, validBody, map[string]string{"X-Forwarded-For": "198.51.100.4"})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestGenerate_RateLimitInfoInBody(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimit = config.RateLimitConfig{
		Enabled: true,
		Limit:   10,
		Window:  time.Minute,
	}
	fake := &fakeChatModel{content: `{"marketingCopies": [{"content": "응답 본문에도 한도 정보"}]}`}
	engine := newTestRouter(cfg, fake)

	w := postGenerate(engine, validBody, map[string]string{"X-Forwarded-For": "192.0.2.1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 9, resp.Data.RateLimit.Remaining)
	assert.Greater(t, resp.Data.RateLimit.ResetTime, time.Now().Unix()-1)
}

func TestHealthEndpoints(t *testing.T) {
	fake := &fakeChatModel{content: "{}"}
	engine := newTestRouter(testConfig(), fake)

	for _, path := range []string{"/health", "/ready", "/live"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
