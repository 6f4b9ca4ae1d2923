package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	api "github.com/rogerio-castellano/kiosco-pos/internal/http"
	handler "github.com/rogerio-castellano/kiosco-pos/internal/http/handlers"
	rl "github.com/rogerio-castellano/kiosco-pos/internal/http/rate_limiter"
	"github.com/rogerio-castellano/kiosco-pos/internal/models"
	"github.com/rogerio-castellano/kiosco-pos/internal/repo"
)

var (
	token      string
	adminToken string

	productRepo *repo.InMemoryProductRepository
	saleRepo    *repo.InMemorySaleRepository
	ticketRepo  *repo.InMemoryTicketRepository
	userRepo    *repo.InMemoryUserRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	if token, err = generateToken(r, "caja", "secret"); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	if adminToken, err = generateToken(r, "admin", "secret"); err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	saleRepo = repo.NewInMemorySaleRepository(productRepo)
	handler.SetSaleRepo(saleRepo)

	ticketRepo = repo.NewInMemoryTicketRepository()
	handler.SetTicketRepo(ticketRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{Username: "caja", PasswordHash: string(hash), Role: "user"})
	userRepo.CreateUser(models.User{Username: "admin", PasswordHash: string(hash), Role: "admin"})
}

func generateToken(r http.Handler, username, password string) (string, error) {
	// Each login starts from a fresh limiter so suites are order-independent.
	rl.CleanupAllVisitors()

	w := doJSON(r, http.MethodPost, "/api/login", handler.CredentialsRequest{
		Username: username,
		Password: password,
	}, "")
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var result handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any, bearer string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(name, barcode, price string, stock int) models.Product {
	p, err := productRepo.Create(models.Product{
		Name:    name,
		Barcode: barcode,
		Price:   decimal.RequireFromString(price),
		Stock:   stock,
	})
	if err != nil {
		panic(fmt.Sprintf("error seeding product: %v", err))
	}
	return p
}

func clearAll() {
	productRepo.Clear()
	saleRepo.Clear()
	ticketRepo.Clear()
}
