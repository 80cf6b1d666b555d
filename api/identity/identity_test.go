package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/beka-birhanu/vinom-backrooms/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct {
	registerErr error
	user        *dmn.User
	signInErr   error
}

func (s *stubAuth) Register(string, string) error { return s.registerErr }

func (s *stubAuth) SignIn(string, string) (*dmn.User, string, error) {
	return s.user, "token", s.signInErr
}

type stubTokenizer struct {
	claims map[string]interface{}
}

func (s *stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "", nil
}

func (s *stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func newEngine(auth *stubAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewDesignerController(auth).RegisterPublic(r.Group("/v1"))
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	body := `{"username":"level_designer","password":"pw"}`

	w := post(newEngine(&stubAuth{}), "/v1/auth/register", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = post(newEngine(&stubAuth{registerErr: dmn.ErrUsernameConflict}), "/v1/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(newEngine(&stubAuth{registerErr: dmn.ErrWeakPassword}), "/v1/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(newEngine(&stubAuth{registerErr: dmn.ErrInvalidUsername}), "/v1/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(newEngine(&stubAuth{registerErr: errors.New("mongo down")}), "/v1/auth/register", body)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "mongo")

	w = post(newEngine(&stubAuth{}), "/v1/auth/register", `{"username":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	user := &dmn.User{ID: uuid.New(), Username: "level_designer"}
	body := `{"username":"level_designer","password":"pw"}`

	w := post(newEngine(&stubAuth{user: user}), "/v1/auth/login", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var session SessionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, "token", session.Token)
	assert.Equal(t, user.ID.String(), session.Designer.ID)
	assert.Equal(t, "level_designer", session.Designer.Username)

	w = post(newEngine(&stubAuth{signInErr: service.ErrInvalidCredentials}), "/v1/auth/login", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(newEngine(&stubAuth{signInErr: errors.New("signing failed")}), "/v1/auth/login", body)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()
	r := gin.New()
	protected := r.Group("/v1")
	protected.Use(Authorize(&stubTokenizer{claims: map[string]interface{}{"userID": id.String(), "username": "level_designer"}}))
	NewDesignerController(&stubAuth{}).RegisterProtected(protected)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var profile DesignerResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, DesignerResponse{ID: id.String(), Username: "level_designer"}, profile)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()
	r := gin.New()
	r.Use(Authorize(&stubTokenizer{claims: map[string]interface{}{"userID": id.String()}}))
	r.GET("/me", func(c *gin.Context) {
		userID, err := UserID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID.String())
	})

	tests := []struct {
		name   string
		header string
		query  string
		code   int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"malformed header", "Token good", "", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", "", http.StatusUnauthorized},
		{"bearer header", "Bearer good", "", http.StatusOK},
		{"query token", "", "?access_token=good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, id.String(), w.Body.String())
			}
		})
	}
}

func TestUserIDWithoutClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := UserID(c)
	assert.ErrorIs(t, err, ErrNoUser)

	c.Set(ContextUserClaims, map[string]interface{}{"userID": 7})
	_, err = UserID(c)
	assert.ErrorIs(t, err, ErrNoUser)
}
