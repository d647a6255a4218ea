package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SmokeValidator прогоняет основные сценарии против запущенного API
type SmokeValidator struct {
	baseURL string
	client  *http.Client
}

func NewSmokeValidator(baseURL string) *SmokeValidator {
	return &SmokeValidator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Status            int    `json:"status"`
	Message           string `json:"message"`
	AuthenticationKey string `json:"authenticationKey"`
}

// ValidateAll registers a throwaway member, logs in and out, and exercises
// the public activity endpoints.
func (v *SmokeValidator) ValidateAll() error {
	slog.Info("Starting API smoke validation", "base_url", v.baseURL)

	if _, err := v.expect("GET", "/health", nil, http.StatusOK); err != nil {
		return err
	}

	email := fmt.Sprintf("smoke-%s@gymhub.local", uuid.New().String()[:8])
	register := map[string]string{
		"user_email":     email,
		"user_password":  "smoke-password",
		"user_firstname": "Smoke",
		"user_lastname":  "Test",
		"user_phone":     "0000000000",
		"user_address":   "nowhere",
	}
	if _, err := v.expect("POST", "/users/register", register, http.StatusOK); err != nil {
		return err
	}

	login, err := v.expect("POST", "/users/login", map[string]string{
		"user_email":    email,
		"user_password": "smoke-password",
	}, http.StatusOK)
	if err != nil {
		return err
	}
	if login.AuthenticationKey == "" {
		return fmt.Errorf("POST /users/login: expected authenticationKey")
	}

	if _, err := v.expect("GET", "/users/by-key/"+login.AuthenticationKey, nil, http.StatusOK); err != nil {
		return err
	}

	activity := map[string]any{
		"activity_name":        "Smoke activity",
		"activity_description": "created by the smoke validator",
		"activity_duration":    30,
	}
	if _, err := v.expect("POST", "/activities", activity, http.StatusOK); err != nil {
		return err
	}
	if _, err := v.expect("GET", "/activities", nil, http.StatusOK); err != nil {
		return err
	}

	if _, err := v.expect("POST", "/users/logout", map[string]string{
		"user_authenticationkey": login.AuthenticationKey,
	}, http.StatusOK); err != nil {
		return err
	}
	if _, err := v.expect("GET", "/users/by-key/"+login.AuthenticationKey, nil, http.StatusNotFound); err != nil {
		return err
	}

	slog.Info("All smoke checks passed")
	return nil
}

func (v *SmokeValidator) expect(method, path string, body any, status int) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, v.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != status {
		return nil, fmt.Errorf("%s %s: expected %d, got %d", method, path, status, resp.StatusCode)
	}

	var env envelope
	// non-JSON bodies are tolerated, only the status is checked
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return &env, nil
}

// RunValidation запускает смоук-проверку API
func RunValidation(baseURL string) error {
	return NewSmokeValidator(baseURL).ValidateAll()
}
