package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/signup-server/internal/api/rest/router"
	"github.com/dtroode/signup-server/internal/model"
	"github.com/dtroode/signup-server/internal/repository/memory"
	"github.com/dtroode/signup-server/internal/security"
	"github.com/dtroode/signup-server/internal/service"
	"github.com/dtroode/signup-server/internal/testutil"
	"github.com/dtroode/signup-server/internal/validation"
)

type sentMail struct {
	email string
	token string
}

type stubNotifier struct {
	fail bool
	sent []sentMail
}

func (n *stubNotifier) SendActivation(_ context.Context, email, token string) error {
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.sent = append(n.sent, sentMail{email: email, token: token})
	return nil
}

type fixture struct {
	mux      http.Handler
	store    *memory.UserRepository
	notifier *stubNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewUserRepository()
	notifier := &stubNotifier{}
	log := testutil.MakeNoopLogger()

	registration := service.NewRegistration(
		store,
		validation.New(store),
		security.NewBcryptHasher(bcrypt.MinCost),
		security.NewRandomTokenGenerator(),
		notifier,
		log,
	)
	activation := service.NewActivation(store, log)

	return &fixture{
		mux:      router.New(registration, activation, store, log).Register(),
		store:    store,
		notifier: notifier,
	}
}

func (f *fixture) post(t *testing.T, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"username":"user1","email":"user1@mail.com","password":"P4ssword!","role":"central line inserter"}`

func TestRegister_Valid(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/1.0/users", validBody, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User created", body["message"])

	users := f.store.All()
	require.Len(t, users, 1)
	saved := users[0]
	assert.Equal(t, "user1", saved.Username)
	assert.Equal(t, "user1@mail.com", saved.Email)
	assert.Equal(t, "central line inserter", saved.Role)
	assert.Equal(t, model.StatusInactive, saved.Status)
	require.NotNil(t, saved.ActivationToken)
	assert.NotEqual(t, "P4ssword!", saved.PasswordDigest)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "user1@mail.com", f.notifier.sent[0].email)
	assert.Equal(t, *saved.ActivationToken, f.notifier.sent[0].token)
}

func TestRegister_ClientSuppliedStatusIgnored(t *testing.T) {
	f := newFixture(t)

	body := `{"username":"user1","email":"user1@mail.com","password":"P4ssword!","inactive":false,"status":"active","activationToken":"forged"}`
	rec := f.post(t, "/api/1.0/users", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	users := f.store.All()
	require.Len(t, users, 1)
	assert.Equal(t, model.StatusInactive, users[0].Status)
	require.NotNil(t, users[0].ActivationToken)
	assert.NotEqual(t, "forged", *users[0].ActivationToken)
}

func TestRegister_NullField(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/1.0/users", `{"username":null,"email":"user1@mail.com","password":"P4ssword!"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Path             string            `json:"path"`
		Timestamp        int64             `json:"timestamp"`
		Message          string            `json:"message"`
		ValidationErrors map[string]string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/api/1.0/users", body.Path)
	assert.Equal(t, "Validation failure", body.Message)
	assert.Equal(t, map[string]string{"username": "cannot be null"}, body.ValidationErrors)
	assert.InDelta(t, time.Now().UnixMilli(), body.Timestamp, float64(5*time.Second/time.Millisecond))
	assert.Empty(t, f.store.All())
}

func TestRegister_NullUsernameAndEmail_OrderedKeys(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/1.0/users", `{"username":null,"email":null,"password":"P4ssword!"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		ValidationErrors map[string]string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.ValidationErrors, 2)
	assert.Contains(t, body.ValidationErrors, "username")
	assert.Contains(t, body.ValidationErrors, "email")

	// serialized key order follows field evaluation order
	raw := rec.Body.String()
	assert.Less(t, strings.Index(raw, `"username"`), strings.Index(raw, `"email"`))
}

func TestRegister_EmailInUse(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/1.0/users", validBody, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.post(t, "/api/1.0/users", `{"username":null,"email":"user1@mail.com","password":"P4ssword!"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		ValidationErrors map[string]string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "in use", body.ValidationErrors["email"])
	assert.Len(t, f.store.All(), 1)
}

func TestRegister_EmailFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.fail = true

	rec := f.post(t, "/api/1.0/users", validBody, nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body struct {
		Path             string          `json:"path"`
		Message          string          `json:"message"`
		ValidationErrors json.RawMessage `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Email failure", body.Message)
	assert.Equal(t, "/api/1.0/users", body.Path)
	assert.Nil(t, body.ValidationErrors)

	// compensating delete ran
	assert.Empty(t, f.store.All())
}

func TestActivate_TokenIsSingleUse(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/1.0/users", validBody, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.notifier.sent, 1)
	token := f.notifier.sent[0].token

	rec = f.post(t, "/api/1.0/users/token/"+token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Account activated", body["message"])

	users := f.store.All()
	require.Len(t, users, 1)
	assert.Equal(t, model.StatusActive, users[0].Status)
	assert.Nil(t, users[0].ActivationToken)

	// stale token must fail
	rec = f.post(t, "/api/1.0/users/token/"+token, "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Activation token is not valid", envelope.Message)
	assert.Equal(t, "/api/1.0/users/token/"+token, envelope.Path)
}

func TestActivate_UnknownTokenMutatesNothing(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/1.0/users", validBody, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.post(t, "/api/1.0/users/token/not-a-token", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	users := f.store.All()
	require.Len(t, users, 1)
	assert.Equal(t, model.StatusInactive, users[0].Status)
	assert.NotNil(t, users[0].ActivationToken)
}

func TestLocaleHeader_ChangesTextOnly(t *testing.T) {
	f := newFixture(t)

	headers := map[string]string{"Accept-Language": "tr-TR,tr;q=0.9"}

	rec := f.post(t, "/api/1.0/users", `{"username":null,"email":null,"password":null}`, headers)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message          string            `json:"message"`
		ValidationErrors map[string]string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Doğrulama hatası", body.Message)
	assert.Equal(t, "boş olamaz", body.ValidationErrors["username"])
	require.Len(t, body.ValidationErrors, 3)

	rec = f.post(t, "/api/1.0/users", validBody, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	var success map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &success))
	assert.Equal(t, "Kullanıcı oluşturuldu", success["message"])
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
