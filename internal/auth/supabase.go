package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"picki-backend/internal/shared/server/respond"
)

// ErrAuthFailed covers rejected credentials and other GoTrue error replies.
var ErrAuthFailed = errors.New("authentication failed")

// SupabaseService is a thin client for the Supabase GoTrue API. The auth
// provider is an opaque collaborator: the rest of the system only needs the
// authenticated user id carried in the access token.
type SupabaseService struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewSupabaseService builds a SupabaseService. baseURL is the project URL
// without a trailing slash.
func NewSupabaseService(baseURL, anonKey string) *SupabaseService {
	return &SupabaseService{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Session is the subset of a GoTrue session the API exposes to clients.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	User         User   `json:"user"`
}

// User identifies an authenticated Supabase user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignInWithPassword exchanges email/password credentials for a session.
func (s *SupabaseService) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := s.post(ctx, "/auth/v1/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	return session, err
}

// SignUp registers a new user.
func (s *SupabaseService) SignUp(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := s.post(ctx, "/auth/v1/signup", "", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	return session, err
}

// SignOut revokes the session behind the given access token.
func (s *SupabaseService) SignOut(ctx context.Context, accessToken string) error {
	return s.post(ctx, "/auth/v1/logout", accessToken, nil, nil)
}

// GetUser resolves the user behind an access token.
func (s *SupabaseService) GetUser(ctx context.Context, accessToken string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, err
	}
	s.setHeaders(req, accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("%w: status %d", ErrAuthFailed, resp.StatusCode)
	}
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *SupabaseService) post(ctx context.Context, path, accessToken string, payload any, out any) error {
	if s.baseURL == "" || s.anonKey == "" {
		return errors.New("supabase auth not configured")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, body)
	if err != nil {
		return err
	}
	s.setHeaders(req, accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %s", ErrAuthFailed, gotrueErrorMessage(resp.Body, resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *SupabaseService) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.anonKey)
	if accessToken == "" {
		accessToken = s.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
}

func gotrueErrorMessage(body io.Reader, status int) string {
	var parsed struct {
		Message   string `json:"msg"`
		ErrorDesc string `json:"error_description"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.ErrorDesc != "" {
			return parsed.ErrorDesc
		}
	}
	return fmt.Sprintf("status %d", status)
}

// RegisterRoutes attaches password-auth routes. These sit under the auth
// exemption in the auth middleware.
func (s *SupabaseService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/sign-up", s.signUp)
	rg.POST("/auth/sign-in", s.signIn)
	rg.POST("/auth/sign-out", s.signOut)
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *SupabaseService) signIn(c *gin.Context) {
	var body credentialsBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		return
	}

	session, err := s.SignInWithPassword(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrAuthFailed) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "auth_unavailable", "authentication service unavailable", nil)
		return
	}
	respond.OK(c, session)
}

func (s *SupabaseService) signUp(c *gin.Context) {
	var body credentialsBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		return
	}

	session, err := s.SignUp(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrAuthFailed) {
			respond.Error(c, http.StatusBadRequest, "sign_up_failed", "Could not create account", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "auth_unavailable", "authentication service unavailable", nil)
		return
	}
	respond.OK(c, session)
}

func (s *SupabaseService) signOut(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.GetHeader("Authorization")), "Bearer"))
	if token == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing session token", nil)
		return
	}
	if err := s.SignOut(c.Request.Context(), token); err != nil {
		respond.Error(c, http.StatusBadGateway, "auth_unavailable", "authentication service unavailable", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "Signed out"})
}
