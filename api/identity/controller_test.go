package identity

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/beka-birhanu/vinom-floodfill/infrastruture/token"
	"github.com/beka-birhanu/vinom-floodfill/service"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Tr0mbone-Glacier-Quietly-81"

type memOperators map[string]*dmn.Operator

func (m memOperators) Save(op *dmn.Operator) error {
	m[op.Username] = op
	return nil
}

func (m memOperators) ByID(id uuid.UUID) (*dmn.Operator, error) {
	for _, op := range m {
		if op.ID == id {
			return op, nil
		}
	}
	return nil, i.ErrNotFound
}

func (m memOperators) ByUsername(username string) (*dmn.Operator, error) {
	if op, ok := m[username]; ok {
		return op, nil
	}
	return nil, i.ErrNotFound
}

func newIdentityEngine(t *testing.T, tokens i.Tokenizer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth, err := service.NewAuthService(memOperators{}, tokens)
	require.NoError(t, err)

	engine := gin.New()
	group := engine.Group("/api/v1")
	NewIdentityServer(auth).RegisterPublic(group)

	protected := engine.Group("/api/v1")
	protected.Use(Authoriz(tokens))
	protected.GET("/whoami", func(c *gin.Context) {
		id, err := OperatorID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.String()})
	})
	return engine
}

func post(engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestIdentityServer(t *testing.T) {
	tokens := token.NewJwtService("test-secret", "floodfill-test")
	engine := newIdentityEngine(t, tokens)

	t.Run("Register", func(t *testing.T) {
		rec := post(engine, "/api/v1/auth/register", AuthRequest{Username: "mouse_01", Password: testPassword})
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("Register twice", func(t *testing.T) {
		rec := post(engine, "/api/v1/auth/register", AuthRequest{Username: "mouse_01", Password: testPassword})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Register weak password", func(t *testing.T) {
		rec := post(engine, "/api/v1/auth/register", AuthRequest{Username: "mouse_02", Password: "abc"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Register missing fields", func(t *testing.T) {
		rec := post(engine, "/api/v1/auth/register", map[string]string{"username": "mouse_03"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	var login AuthResponse
	t.Run("Login", func(t *testing.T) {
		rec := post(engine, "/api/v1/auth/login", AuthRequest{Username: "mouse_01", Password: testPassword})
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
		assert.Equal(t, "mouse_01", login.Username)
		assert.NotEmpty(t, login.Token)
	})

	t.Run("Login with wrong password", func(t *testing.T) {
		rec := post(engine, "/api/v1/auth/login", AuthRequest{Username: "mouse_01", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Token identifies the operator", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+login.Token)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, login.ID, body["id"])
	})
}

func TestAuthoriz(t *testing.T) {
	tokens := token.NewJwtService("test-secret", "floodfill-test")
	engine := newIdentityEngine(t, tokens)

	noOperator, err := tokens.Generate(map[string]interface{}{"username": "x"}, time.Minute)
	require.NoError(t, err)
	expired, err := tokens.Generate(map[string]interface{}{"operatorID": uuid.NewString()}, -time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"Missing header", "", http.StatusUnauthorized},
		{"Not bearer", "Basic abc", http.StatusUnauthorized},
		{"Garbage token", "Bearer abc", http.StatusUnauthorized},
		{"Expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"Token without operator", "Bearer " + noOperator, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
