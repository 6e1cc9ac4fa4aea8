package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/campustech/clubhub/backend/internal/auth"
	"github.com/campustech/clubhub/backend/internal/graph"
	"github.com/campustech/clubhub/backend/internal/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

var (
	errMissingVerifier    = errors.New("session verifier dependency required")
	errMissingUserService = errors.New("user service dependency required")
	errMissingSchema      = errors.New("graphql schema dependency required")
)

// SessionVerifier validates an identity-provider session token and returns
// its claims.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (auth.SessionClaims, error)
}

// UploadConfig carries the parameters clients need to upload files directly
// to the storage provider.
type UploadConfig struct {
	CloudName string
	Preset    string
}

// Dependencies wires the HTTP layer to its collaborators.
type Dependencies struct {
	Verifier       SessionVerifier
	Users          *users.Service
	Schema         graphql.Schema
	WebhookSecret  string
	AllowedOrigins []string
	Uploads        UploadConfig
	Logger         *zap.Logger
}

// NewHTTPHandler assembles the Gin router serving the GraphQL endpoint, the
// identity webhook, and the upload parameter endpoint.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Verifier == nil {
		return nil, errMissingVerifier
	}
	if deps.Users == nil {
		return nil, errMissingUserService
	}
	if deps.Schema.QueryType() == nil {
		return nil, errMissingSchema
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler := &httpHandler{
		verifier:      deps.Verifier,
		users:         deps.Users,
		schema:        deps.Schema,
		webhookSecret: deps.WebhookSecret,
		uploads:       deps.Uploads,
		logger:        logger,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/webhooks/identity", handler.handleIdentityWebhook)

	api := router.Group("/")
	api.Use(handler.resolveCaller)
	api.POST("/graphql", handler.handleGraphQL)
	api.GET("/graphql", handler.handleGraphQL)
	api.GET("/uploads/params", handler.handleUploadParams)

	return router, nil
}

type httpHandler struct {
	verifier      SessionVerifier
	users         *users.Service
	schema        graphql.Schema
	webhookSecret string
	uploads       UploadConfig
	logger        *zap.Logger
}

// resolveCaller verifies the bearer token, maps the subject onto the local
// user row, and attaches it to the request context. Anonymous and
// unresolvable callers proceed with no caller attached; the resolver guards
// produce the authentication failures.
func (h *httpHandler) resolveCaller(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.Next()
		return
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		c.Next()
		return
	}

	claims, err := h.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("session token verification failed", zap.Error(err))
		c.Next()
		return
	}

	user, err := h.users.GetByExternalID(c.Request.Context(), claims.Subject)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			h.logger.Error("caller lookup failed", zap.Error(err))
		}
		c.Next()
		return
	}

	c.Request = c.Request.WithContext(graph.WithCaller(c.Request.Context(), user))
	c.Next()
}

type graphqlRequestPayload struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (h *httpHandler) handleGraphQL(c *gin.Context) {
	var request graphqlRequestPayload

	switch c.Request.Method {
	case http.MethodGet:
		request.Query = c.Query("query")
		request.OperationName = c.Query("operationName")
		if rawVariables := c.Query("variables"); rawVariables != "" {
			if err := json.Unmarshal([]byte(rawVariables), &request.Variables); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_variables"})
				return
			}
		}
	default:
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}
	}

	if strings.TrimSpace(request.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query_required"})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  request.Query,
		OperationName:  request.OperationName,
		VariableValues: request.Variables,
		Context:        c.Request.Context(),
	})

	// Partial data travels with the error list, matching an "all" error
	// policy on the client side.
	c.JSON(http.StatusOK, result)
}

func (h *httpHandler) handleUploadParams(c *gin.Context) {
	if _, err := graph.RequireAuth(c.Request.Context()); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if h.uploads.CloudName == "" || h.uploads.Preset == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads_not_configured"})
		return
	}

	base := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s", h.uploads.CloudName)
	c.JSON(http.StatusOK, gin.H{
		"cloud_name":    h.uploads.CloudName,
		"upload_preset": h.uploads.Preset,
		"endpoints": gin.H{
			"docs":   base + "/raw/upload",
			"videos": base + "/video/upload",
			"images": base + "/image/upload",
			"links":  base + "/raw/upload",
		},
	})
}
