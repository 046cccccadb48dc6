package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listify/backend/config"
	"github.com/listify/backend/internal/domain"
	"github.com/listify/backend/internal/infrastructure/ai"
	"github.com/listify/backend/internal/infrastructure/catalog"
	"github.com/listify/backend/internal/infrastructure/registry"
	"github.com/listify/backend/internal/usecase"
)

const aiResearchReply = `{
  "title": "Jimmy H8 Flex Cordless Vacuum Cleaner",
  "category": "Home & Garden > Cleaning Equipment",
  "images": ["https://cdn.vendor.example/h8.jpg"],
  "companyInfo": {"name": "Jimmy Technology Co.", "country": "China", "yearEstablished": "2015"},
  "contactLogistics": {"email": "sales@jimmy.example", "phone": "+86 123 4567"},
  "pricing": {"retailPrice": 199.99},
  "supplierTrade": {"supplierName": "Jimmy Technology Co.", "hsCode": "8508.11"},
  "logistics": {"manufacturingTime": "30 days", "transitTime": "25 days", "paymentMethod": "T/T"},
  "salesContent": {
    "keySpecifications": ["Motor: 450 W", "Runtime: 40 min"],
    "applications": ["Home cleaning"]
  },
  "descriptions": {"overview": "A cordless handheld vacuum."},
  "sources": ["https://vendor.example/h8"],
  "confidence": {"specifications": "high", "pricing": "medium", "supplierInfo": "high"}
}`

// newAIServer serves an OpenAI-compatible completion endpoint returning
// the canned research reply.
func newAIServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": aiResearchReply}},
			},
		}
		json.NewEncoder(w).Encode(reply)
	}))
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wc/v3":
			w.Write([]byte(`{"name": "Listify Demo Store", "version": "8.5.2"}`))
		case "/wp-json/wc/v3/products":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 1234, "sku": "jimmy-h8-flex", "status": "draft"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestRouter(t *testing.T, aiURL, catalogURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	aiClient := ai.NewClient("test-key", aiURL, "gpt-4o-mini", 0.3, logger)
	catalogClient := catalog.NewClient(catalogURL, "ck_x", "cs_y", logger)

	researchSvc := usecase.NewResearchService(aiClient, registry.NewMemoryStore(), usecase.ResearchServiceConfig{
		ModelName:   "gpt-4o-mini",
		RegistryTTL: time.Hour,
	}, logger)
	importSvc := usecase.NewImportService(catalogClient, logger)

	handler := NewHandler(researchSvc, importSvc, catalogClient, logger)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    "test",
			AllowedOrigins: []string{"*"},
		},
	}
	return SetupRouter(cfg, handler, logger)
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1", "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "listify-backend", body["service"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestResearchEndpoint(t *testing.T) {
	aiServer := newAIServer(t)
	defer aiServer.Close()

	router := newTestRouter(t, aiServer.URL, "")

	t.Run("rejects a missing product name", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/products/research", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns the assembled record", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/products/research", `{"productName": "jimmy h8 flex"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			Product           domain.ProductRecord `json:"product"`
			PossibleDuplicate bool                 `json:"possibleDuplicate"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

		assert.Equal(t, "Jimmy H8 Flex Cordless Vacuum Cleaner", body.Product.Title)
		assert.Equal(t, "jimmy-h8-flex", body.Product.SKU)
		assert.False(t, body.PossibleDuplicate)
		require.NotNil(t, body.Product.Pricing.WholesalePrice)
		assert.Equal(t, 148.14, *body.Product.Pricing.WholesalePrice)
		assert.NotEmpty(t, body.Product.ReviewNotes)
		assert.NotEmpty(t, body.Product.Metadata.SpecHash)
	})

	t.Run("flags the second identical research", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/products/research", `{"productName": "jimmy h8 flex"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			PossibleDuplicate bool `json:"possibleDuplicate"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.PossibleDuplicate)
	})

	t.Run("maps an unreachable AI service to 502", func(t *testing.T) {
		downRouter := newTestRouter(t, "http://127.0.0.1:1", "")
		w := postJSON(t, downRouter, "/api/v1/products/research", `{"productName": "jimmy h8 flex"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestValidateEndpoint(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1", "")

	t.Run("incomplete record reports errors without blocking", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/products/validate", `{"title": "Vacuum"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result domain.ValidationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.False(t, result.IsValid)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/products/validate", `{"title": 7`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportEndpoint(t *testing.T) {
	catalogServer := newCatalogServer(t)
	defer catalogServer.Close()

	aiServer := newAIServer(t)
	defer aiServer.Close()

	router := newTestRouter(t, aiServer.URL, catalogServer.URL)

	// research first so the import body is a genuinely assembled record
	research := postJSON(t, router, "/api/v1/products/research", `{"productName": "jimmy h8 flex"}`)
	require.Equal(t, http.StatusOK, research.Code)
	var researched struct {
		Product json.RawMessage `json:"product"`
	}
	require.NoError(t, json.Unmarshal(research.Body.Bytes(), &researched))

	t.Run("imports a researched record as a draft", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/products/import", string(researched.Product))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result domain.ImportResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, int64(1234), result.ProductID)
		assert.Contains(t, result.EditURL, "action=edit")
	})

	t.Run("invalid record is a 422 with the validation result", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/products/import", `{"title": "Vacuum"}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body struct {
			Validation domain.ValidationResult `json:"validation"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Validation.Errors)
	})

	t.Run("unconfigured catalog is a 503", func(t *testing.T) {
		bareRouter := newTestRouter(t, aiServer.URL, "")
		w := postJSON(t, bareRouter, "/api/v1/products/import", string(researched.Product))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("catalog rejection is a 409 with the upstream code", func(t *testing.T) {
		rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code": "woocommerce_rest_cannot_create", "message": "Sorry, you are not allowed to create resources."}`))
		}))
		defer rejecting.Close()

		rejRouter := newTestRouter(t, aiServer.URL, rejecting.URL)
		w := postJSON(t, rejRouter, "/api/v1/products/import", string(researched.Product))
		require.Equal(t, http.StatusConflict, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "woocommerce_rest_cannot_create", body["code"])
	})
}

func TestCatalogHealthEndpoint(t *testing.T) {
	catalogServer := newCatalogServer(t)
	defer catalogServer.Close()

	t.Run("probe outcome rides a 200", func(t *testing.T) {
		router := newTestRouter(t, "http://127.0.0.1:1", catalogServer.URL)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var result domain.HealthResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, domain.HealthConnected, result.Status)
		assert.Equal(t, "Listify Demo Store", result.Details.StoreName)
	})

	t.Run("missing credentials still answer 200", func(t *testing.T) {
		router := newTestRouter(t, "http://127.0.0.1:1", "")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var result domain.HealthResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, domain.HealthMissingCredentials, result.Status)
	})
}
