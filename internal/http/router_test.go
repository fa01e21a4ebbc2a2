package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-wordle-backend/internal/config"
	"github.com/tbourn/go-wordle-backend/internal/domain"
	"github.com/tbourn/go-wordle-backend/internal/http/middleware"
	"github.com/tbourn/go-wordle-backend/internal/lexicon"
	"github.com/tbourn/go-wordle-backend/internal/repo"
	"github.com/tbourn/go-wordle-backend/internal/services"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:routerdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// newTestGame builds the game stack over words. With the default single
// word every issuance resolves to CRANE.
func newTestGame(t *testing.T, words ...string) *services.GameService {
	t.Helper()
	if len(words) == 0 {
		words = []string{"crane"}
	}
	db := newTestDB(t)
	lex := lexicon.NewHandle(func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(strings.Join(words, "\n"))), nil
	}, nil)
	sched := services.NewScheduler(db, lex, nil, 0, 3)
	g := services.NewGameService(db, lex, sched, 6, time.UTC)
	g.Now = func() time.Time { return fixedNow }
	return g
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     100,
		RateBurst:   10,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newRouter(t *testing.T, cfg config.Config) (*gin.Engine, *services.GameService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := newTestGame(t)
	RegisterRoutes(r, g, cfg)
	return r, g
}

func serve(r http.Handler, method, path, user string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(middleware.HeaderUserID, user)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	r, _ := newRouter(t, testConfig())

	// /health works
	w := serve(r, http.MethodGet, "/health", "", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = serve(r, http.MethodGet, "/metrics", "", nil, nil)
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}
	if !strings.Contains(w.Body.String(), "wordle_http_requests_total") {
		t.Fatalf("expected http metrics in scrape")
	}

	// NoRoute → 404 envelope
	w = serve(r, http.MethodGet, "/nope", "", nil, nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("GET /nope expected 404 envelope, got %d %s", w.Code, w.Body.String())
	}

	// NoMethod → 405 (POST /health)
	w = serve(r, http.MethodPost, "/health", "", nil, nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}

	// Swagger stays off unless enabled
	if w = serve(r, http.MethodGet, "/swagger/doc.json", "", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be disabled, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	cfg := testConfig()
	cfg.APIBasePath = "/api/v2"
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	r, _ := newRouter(t, cfg)

	// Any request runs through CORS middleware; header should reflect origin.
	w := serve(r, http.MethodGet, "/health", "", nil, map[string]string{"Origin": "http://example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	// Preflight for session deletion is allowed.
	w = serve(r, http.MethodOptions, "/api/v2/infinite/x", "", nil, map[string]string{
		"Origin":                        "http://example.com",
		"Access-Control-Request-Method": http.MethodDelete,
	})
	if w.Code != http.StatusNoContent || !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "DELETE") {
		t.Fatalf("preflight: %d allow=%q", w.Code, w.Header().Get("Access-Control-Allow-Methods"))
	}

	// Routes follow the configured base path.
	if w = serve(r, http.MethodGet, "/api/v2/daily", "u1", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("GET /api/v2/daily = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_Swagger(t *testing.T) {
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	r, _ := newRouter(t, cfg)

	w := serve(r, http.MethodGet, "/swagger/doc.json", "", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /swagger/doc.json = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/words/{id}/guesses") {
		t.Fatalf("doc.json missing game paths")
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

// Smoke test that a request traverses the tracing, security and compression pipeline.
func TestPipeline_Smoke(t *testing.T) {
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour}
	r, _ := newRouter(t, cfg)

	w := serve(r, http.MethodGet, "/health", "", nil, map[string]string{"X-Forwarded-Proto": "https"})
	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /health = %d", w.Code)
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if got := w.Header().Get("Cache-Control"); got != "private, no-cache" {
		t.Fatalf("Cache-Control = %q", got)
	}
	if got := w.Header().Get("Strict-Transport-Security"); !strings.HasPrefix(got, "max-age=3600") {
		t.Fatalf("HSTS = %q", got)
	}

	w = serve(r, http.MethodGet, "/api/v1/daily", "u1", nil, map[string]string{"Accept-Encoding": "gzip"})
	if w.Code != http.StatusOK || w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got %d %q", w.Code, w.Header().Get("Content-Encoding"))
	}
}

func TestRegisterRoutes_GameFlowWithReplay(t *testing.T) {
	r, _ := newRouter(t, testConfig())

	w := serve(r, http.MethodGet, "/api/v1/daily", "u1", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET daily = %d %s", w.Code, w.Body.String())
	}
	var daily struct {
		Word struct {
			ID       string `json:"id"`
			Solution string `json:"solution"`
		} `json:"word"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &daily); err != nil || daily.Word.ID == "" || daily.Word.Solution != "" {
		t.Fatalf("daily body=%s err=%v", w.Body.String(), err)
	}
	base := "/api/v1/words/" + daily.Word.ID

	w = serve(r, http.MethodPost, base+"/guesses", "u1", map[string]string{"guess": "crane"}, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"won":true`) {
		t.Fatalf("guess = %d %s", w.Code, w.Body.String())
	}

	body := map[string]any{"guesses": []string{"crane"}, "status": "won"}
	idem := map[string]string{middleware.HeaderIdempotencyKey: "attempt-1"}

	w = serve(r, http.MethodPost, base+"/attempt", "u1", body, idem)
	if w.Code != http.StatusCreated {
		t.Fatalf("record = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, base+"/attempt", "u1", body, idem)
	if w.Code != http.StatusOK || w.Header().Get(middleware.HeaderIdempotencyReplayed) != "true" {
		t.Fatalf("replay = %d replayed=%q", w.Code, w.Header().Get(middleware.HeaderIdempotencyReplayed))
	}

	// Without a key a second submission conflicts.
	if w = serve(r, http.MethodPost, base+"/attempt", "u1", body, nil); w.Code != http.StatusConflict {
		t.Fatalf("duplicate = %d", w.Code)
	}

	if w = serve(r, http.MethodPost, base+"/attempt", "u1", body, map[string]string{middleware.HeaderIdempotencyKey: "bad key!"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad idempotency key = %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/api/v1/stats", "u1", nil, nil)
	if w.Code != http.StatusOK || w.Header().Get("ETag") == "" || !strings.Contains(w.Body.String(), `"played":1`) {
		t.Fatalf("stats = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_RateLimitPerUser(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS = 0.001
	cfg.RateBurst = 1
	r, _ := newRouter(t, cfg)

	if w := serve(r, http.MethodGet, "/health", "u1", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("first = %d", w.Code)
	}
	w := serve(r, http.MethodGet, "/health", "u1", nil, nil)
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
		t.Fatalf("second = %d retry=%q", w.Code, w.Header().Get("Retry-After"))
	}
	// Buckets are per user.
	if w = serve(r, http.MethodGet, "/health", "u2", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("other user = %d", w.Code)
	}
}

func Test_finishedAttemptLookup(t *testing.T) {
	g := newTestGame(t, "crane", "abbey")
	ctx := context.Background()
	lookup := finishedAttemptLookup(g.DB)

	w, err := g.Daily(ctx)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if ok, err := lookup(ctx, "u1", w.ID, "k"); ok || err != nil {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}

	// A playing session is not a replay.
	s, err := g.StartInfinite(ctx, "u2")
	if err != nil {
		t.Fatalf("start infinite: %v", err)
	}
	if ok, err := lookup(ctx, "u2", s.IssuedWordID, "k"); ok || err != nil {
		t.Fatalf("playing: ok=%v err=%v", ok, err)
	}

	if _, err := g.RecordAttempt(ctx, "u1", w.ID, []string{w.Word}, domain.GameWon); err != nil {
		t.Fatalf("record: %v", err)
	}
	if ok, err := lookup(ctx, "u1", w.ID, "k"); !ok || err != nil {
		t.Fatalf("hit: ok=%v err=%v", ok, err)
	}

	// Closing the pool drives the error branch.
	sqlDB, err := g.DB.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	_ = sqlDB.Close()
	if ok, err := lookup(ctx, "u1", w.ID, "k"); ok || err == nil {
		t.Fatalf("closed db: ok=%v err=%v", ok, err)
	}
}
