package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/painelout/backend/internal/models"
	"github.com/painelout/backend/pkg/jsonstore"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	col := jsonstore.NewCollection[models.User](t.TempDir(), "usuarios.json", zap.NewNop())
	h := NewHandler(NewRepository(col), zap.NewNop())
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/clientes", h.ListClientes)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestRouter(t)

	first := `{"nome":"João","email":"joao@example.com","password":"123"}`
	if w := doJSON(r, http.MethodPost, "/api/auth/register", first); w.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d (%s)", w.Code, w.Body)
	}

	second := `{"nome":"Outro","email":"joao@example.com","password":"456"}`
	w := doJSON(r, http.MethodPost, "/api/auth/register", second)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d (%s)", w.Code, w.Body)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp["error"] != "Email já cadastrado" {
		t.Errorf("unexpected error message: %q", resp["error"])
	}

	// First account must be intact, with its original password.
	login := `{"email":"joao@example.com","password":"123"}`
	if w := doJSON(r, http.MethodPost, "/api/auth/login", login); w.Code != http.StatusOK {
		t.Fatalf("login after duplicate attempt: expected 200, got %d (%s)", w.Code, w.Body)
	}
}

func TestRegisterAcceptsSenhaField(t *testing.T) {
	r := newTestRouter(t)

	body := `{"nome":"Maria","email":"maria@example.com","senha":"segredo"}`
	if w := doJSON(r, http.MethodPost, "/api/auth/register", body); w.Code != http.StatusCreated {
		t.Fatalf("register with senha field: expected 201, got %d (%s)", w.Code, w.Body)
	}

	login := `{"email":"maria@example.com","password":"segredo"}`
	if w := doJSON(r, http.MethodPost, "/api/auth/login", login); w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", w.Code, w.Body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/auth/register", `{"nome":"Ana","email":"ana@example.com","password":"certa"}`)

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"errada"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (%s)", w.Code, w.Body)
	}
}

func TestLoginOmitsPassword(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/auth/register", `{"nome":"Ana","email":"ana@example.com","password":"certa"}`)

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"certa"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body)
	}
	var resp struct {
		User map[string]interface{} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if resp.User["nome"] != "Ana" || resp.User["email"] != "ana@example.com" || resp.User["tipo"] != "cliente" {
		t.Errorf("unexpected user payload: %v", resp.User)
	}
	if _, ok := resp.User["senha"]; ok {
		t.Errorf("login payload leaks the password: %s", w.Body)
	}
}

func TestListClientes(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/auth/register", `{"nome":"Ana","email":"ana@example.com","password":"a"}`)
	doJSON(r, http.MethodPost, "/api/auth/register", `{"nome":"Beto","email":"beto@example.com","password":"b"}`)

	w := doJSON(r, http.MethodGet, "/api/auth/clientes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body)
	}
	var clientes []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &clientes); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(clientes) != 2 {
		t.Fatalf("expected 2 clientes, got %d", len(clientes))
	}
	for _, cl := range clientes {
		if _, ok := cl["senha"]; ok {
			t.Errorf("cliente payload leaks the password: %v", cl)
		}
	}
}
