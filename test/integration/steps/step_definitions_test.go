//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agency-ops/backend/internal/application/usecase/auth"
	"github.com/agency-ops/backend/internal/application/usecase/client"
	"github.com/agency-ops/backend/internal/application/usecase/document"
	"github.com/agency-ops/backend/internal/application/usecase/vat"
	"github.com/agency-ops/backend/internal/domain/entity"
	"github.com/agency-ops/backend/internal/domain/valueobject"
	"github.com/agency-ops/backend/internal/infra/server/router"
	"github.com/agency-ops/backend/internal/integration/adapters"
	"github.com/agency-ops/backend/internal/integration/email"
	"github.com/agency-ops/backend/internal/integration/entrypoint/controller"
	"github.com/agency-ops/backend/internal/integration/entrypoint/middleware"
	"github.com/agency-ops/backend/internal/integration/persistence"
	"github.com/agency-ops/backend/internal/integration/persistence/model"
	"github.com/agency-ops/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri               string
	headers           map[string]string
	client            *http.Client
	response          *response
	db                *mock.Db
	serverPort        int
	accessToken       string
	refreshToken      string
	resetToken        string
	expiredToken      string
	currentUserID     uuid.UUID
	currentDocumentID uuid.UUID
	currentClientID   uuid.UUID
}

type response struct {
	status  int
	headers http.Header
	raw     string
	body    any
}

var serverInit sync.Once
var testDB *mock.Db
var testStorage *mock.ObjectStorage
var testAPI *mock.ApiMock
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("agency_ops", map[string]any{
			"users":                 &model.UserModel{},
			"refresh_tokens":        &model.RefreshTokenModel{},
			"password_reset_tokens": &model.PasswordResetTokenModel{},
			"boekhoud_documents":    &model.DocumentModel{},
			"clients":               &model.ClientModel{},
			"email_queue":           &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return nil, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^an admin user exists with email "([^"]*)"$`, test.anAdminUserExistsWithEmail)
	ctx.Given(`^an admin user exists with email "([^"]*)" and password "([^"]*)"$`, test.anAdminUserExistsWithEmailAndPassword)
	ctx.Given(`^a viewer user exists with email "([^"]*)"$`, test.aViewerUserExistsWithEmail)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)
	ctx.Given(`^an expired password reset token exists$`, test.anExpiredPasswordResetTokenExists)

	// Document setup steps
	ctx.Given(`^an approved "([^"]*)" dated "([^"]*)" with total "([^"]*)" at rate "([^"]*)"$`, test.anApprovedDocument)
	ctx.Given(`^a document awaiting review exists$`, test.aDocumentAwaitingReviewExists)
	ctx.Given(`^a rejected document exists$`, test.aRejectedDocumentExists)
	ctx.Given(`^an approved document with no invoice number dated "([^"]*)"$`, test.anApprovedDocumentWithNoInvoiceNumber)
	ctx.Given(`^the extraction service will answer with:$`, test.theExtractionServiceWillAnswerWith)
	ctx.Then(`^the extraction service should have received the document file URL$`, test.theExtractionServiceShouldHaveReceivedTheFileURL)

	// Client setup steps
	ctx.Given(`^a client exists named "([^"]*)" with contact email "([^"]*)"$`, test.aClientExistsNamedWithContactEmail)
	ctx.Given(`^a client exists named "([^"]*)" without a contact email$`, test.aClientExistsNamedWithoutContactEmail)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I upload (\d+) files as kind "([^"]*)"$`, test.iUploadFilesAsKind)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response text should contain "([^"]*)"$`, test.theResponseTextShouldContain)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.expiredToken = ""
	t.currentUserID = uuid.Nil
	t.currentDocumentID = uuid.Nil
	t.currentClientID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	if testStorage != nil {
		testStorage.Clear()
	}
	if testAPI != nil {
		testAPI.ClearResponses(http.MethodPost, "/extract")
	}
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			testStorage = mock.NewObjectStorage()
			testAPI = mock.NewApiServer()
			testAPI.Start()

			// Create repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
			documentRepo := persistence.NewDocumentRepository(testDB.DbConn)
			clientRepo := persistence.NewClientRepository(testDB.DbConn)
			emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)

			// Create adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
			resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
			emailService := email.NewService(emailQueueRepo, "http://localhost:5173")

			// Create auth use cases
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
			logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
			forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, "http://localhost:5173")
			resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

			// Create document use cases, with extraction pointed at the API mock
			extractionService := adapters.NewHTTPExtractionService(testAPI.GetUrl() + "/extract")
			ingestDocumentsUseCase := document.NewIngestDocumentsUseCase(documentRepo, testStorage)
			listDocumentsUseCase := document.NewListDocumentsUseCase(documentRepo)
			reviewDocumentUseCase := document.NewReviewDocumentUseCase(documentRepo)
			extractFieldsUseCase := document.NewExtractFieldsUseCase(documentRepo, extractionService)

			// Create VAT reporting use cases
			periodReportUseCase := vat.NewGetPeriodReportUseCase(documentRepo)
			dataHealthUseCase := vat.NewGetDataHealthUseCase(documentRepo)
			exportPeriodUseCase := vat.NewExportPeriodUseCase(periodReportUseCase)
			exportXLSXUseCase := vat.NewExportReportXLSXUseCase(periodReportUseCase, dataHealthUseCase)

			// Create client use cases
			createClientUseCase := client.NewCreateClientUseCase(clientRepo)
			listClientsUseCase := client.NewListClientsUseCase(clientRepo)
			updateClientUseCase := client.NewUpdateClientUseCase(clientRepo)
			deleteClientUseCase := client.NewDeleteClientUseCase(clientRepo)
			inviteClientUseCase := client.NewInviteClientUseCase(clientRepo, emailService, "http://localhost:5173/portal")

			// Create controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})

			authController := controller.NewAuthController(
				loginUseCase,
				refreshTokenUseCase,
				logoutUseCase,
				forgotPasswordUseCase,
				resetPasswordUseCase,
			)

			documentController := controller.NewDocumentController(
				ingestDocumentsUseCase,
				listDocumentsUseCase,
				reviewDocumentUseCase,
				extractFieldsUseCase,
			)

			vatController := controller.NewVATController(
				periodReportUseCase,
				dataHealthUseCase,
				exportPeriodUseCase,
				exportXLSXUseCase,
			)

			clientController := controller.NewClientController(
				createClientUseCase,
				listClientsUseCase,
				updateClientUseCase,
				deleteClientUseCase,
				inviteClientUseCase,
			)

			// Create middleware
			loginRateLimiter := middleware.NewRateLimiter(mock.NewRedis())
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				documentController,
				vatController,
				clientController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{
				Addr:    addr,
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) anAdminUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test Admin", entity.RoleAdmin)
}

func (t *testContext) anAdminUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test Admin", entity.RoleAdmin)
}

func (t *testContext) aViewerUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test Viewer", entity.RoleViewer)
}

func (t *testContext) createUser(email, password, name string, role entity.UserRole) error {
	userID := uuid.New()
	t.currentUserID = userID

	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hashPassword(password),
		Role:         string(role),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	result := t.db.DbConn.Create(user)
	return result.Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	var user model.UserModel
	if err := t.db.DbConn.Where("id = ?", t.currentUserID).First(&user).Error; err != nil {
		return fmt.Errorf("no current user to log in: %w", err)
	}

	now := time.Now().UTC()

	accessToken, err := signTestToken(user, "access", now, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessToken

	refreshToken, err := signTestToken(user, "refresh", now, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshToken

	refreshTokenModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      t.currentUserID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	result := t.db.DbConn.Create(refreshTokenModel)
	return result.Error
}

func signTestToken(user model.UserModel, tokenType string, now time.Time, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"email":      user.Email,
		"role":       user.Role,
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(duration)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "agency-ops",
		"sub":        user.ID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	t.resetToken = fmt.Sprintf("test-reset-token-%s", uuid.New().String())

	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.resetToken,
		UserID:    user.ID,
		Email:     email,
		Used:      false,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		CreatedAt: time.Now(),
	}

	result := t.db.DbConn.Create(resetTokenModel)
	return result.Error
}

func (t *testContext) anExpiredPasswordResetTokenExists() error {
	t.expiredToken = fmt.Sprintf("expired-reset-token-%s", uuid.New().String())

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.expiredToken,
		UserID:    uuid.New(),
		Email:     "expired@example.com",
		Used:      false,
		ExpiresAt: time.Now().Add(-1 * time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}

	result := t.db.DbConn.Create(resetTokenModel)
	return result.Error
}

// anApprovedDocument seeds an approved document with the flat-rate breakdown
// the review workflow would have derived.
func (t *testContext) anApprovedDocument(kind, dateStr, totalStr, rateStr string) error {
	invoiceDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return fmt.Errorf("invalid total %q: %w", totalStr, err)
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", rateStr, err)
	}

	line := valueobject.DeriveVATLine(total, rate)
	now := time.Now().UTC()

	doc := &entity.FinancialDocument{
		ID:            uuid.New(),
		Kind:          entity.DocumentKind(kind),
		Counterparty:  "Seeded Counterparty",
		InvoiceNumber: fmt.Sprintf("INV-%s", uuid.New().String()[:8]),
		InvoiceDate:   &invoiceDate,
		AmountExclVAT: &line.Base,
		VATTotal:      &line.Tax,
		AmountInclVAT: &total,
		Currency:      "EUR",
		Status:        entity.DocumentStatusApproved,
		VATBreakdown:  []entity.VATLine{line},
		StoragePath:   "documents/" + uuid.New().String() + ".pdf",
		FileURL:       "http://storage.test/seeded.pdf",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	t.currentDocumentID = doc.ID

	return t.db.DbConn.Create(model.DocumentFromEntity(doc)).Error
}

func (t *testContext) aDocumentAwaitingReviewExists() error {
	doc := entity.NewFinancialDocument(
		entity.DocumentKindPurchaseInvoice,
		"documents/"+uuid.New().String()+".pdf",
		"http://storage.test/pending.pdf",
	)
	t.currentDocumentID = doc.ID

	return t.db.DbConn.Create(model.DocumentFromEntity(doc)).Error
}

func (t *testContext) aRejectedDocumentExists() error {
	doc := entity.NewFinancialDocument(
		entity.DocumentKindReceipt,
		"documents/"+uuid.New().String()+".pdf",
		"http://storage.test/rejected.pdf",
	)
	doc.Status = entity.DocumentStatusRejected
	doc.Notes = "duplicate upload"
	t.currentDocumentID = doc.ID

	return t.db.DbConn.Create(model.DocumentFromEntity(doc)).Error
}

func (t *testContext) anApprovedDocumentWithNoInvoiceNumber(dateStr string) error {
	invoiceDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	total := decimal.RequireFromString("500.00")
	line := valueobject.DeriveVATLine(total, decimal.NewFromInt(21))
	now := time.Now().UTC()

	doc := &entity.FinancialDocument{
		ID:            uuid.New(),
		Kind:          entity.DocumentKindSalesInvoice,
		Counterparty:  "Seeded Counterparty",
		InvoiceDate:   &invoiceDate,
		AmountExclVAT: &line.Base,
		VATTotal:      &line.Tax,
		AmountInclVAT: &total,
		Currency:      "EUR",
		Status:        entity.DocumentStatusApproved,
		VATBreakdown:  []entity.VATLine{line},
		StoragePath:   "documents/" + uuid.New().String() + ".pdf",
		FileURL:       "http://storage.test/unnumbered.pdf",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	t.currentDocumentID = doc.ID

	return t.db.DbConn.Create(model.DocumentFromEntity(doc)).Error
}

// theExtractionServiceWillAnswerWith programs the extraction mock's default
// response for the scenario.
func (t *testContext) theExtractionServiceWillAnswerWith(body *godog.DocString) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("invalid extraction payload: %w", err)
	}
	testAPI.SetResponse(-1, http.MethodPost, "/extract", http.StatusOK, payload)
	return nil
}

func (t *testContext) theExtractionServiceShouldHaveReceivedTheFileURL() error {
	body := testAPI.GetRequestBody(http.MethodPost, "/extract", 0)
	if body == nil {
		return errors.New("the extraction service received no request")
	}
	fileURL, _ := body["fileUrl"].(string)
	if fileURL == "" {
		return errors.New("the extraction request carried no file URL")
	}
	return nil
}

func (t *testContext) aClientExistsNamedWithContactEmail(name, contactEmail string) error {
	return t.createClient(name, contactEmail)
}

func (t *testContext) aClientExistsNamedWithoutContactEmail(name string) error {
	return t.createClient(name, "")
}

func (t *testContext) createClient(name, contactEmail string) error {
	clientID := uuid.New()
	t.currentClientID = clientID

	now := time.Now().UTC()
	clientModel := &model.ClientModel{
		ID:           clientID,
		Name:         name,
		ContactEmail: contactEmail,
		KvKNumber:    "12345678",
		VATNumber:    "NL123456789B01",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return t.db.DbConn.Create(clientModel).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replaceTokenPlaceholders(path)
	return t.executeRequest(method, path, nil, "")
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replaceTokenPlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		content := t.replaceTokenPlaceholders(body.Content)
		payload = []byte(content)
	}
	return t.executeRequest(method, path, payload, "application/json")
}

// iUploadFilesAsKind sends a multipart upload with the given number of dummy
// PDF files.
func (t *testContext) iUploadFilesAsKind(count int, kind string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("kind", kind); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		part, err := writer.CreateFormFile("files", fmt.Sprintf("invoice-%d.pdf", i+1))
		if err != nil {
			return err
		}
		if _, err := part.Write([]byte("%PDF-1.4 test document")); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return t.executeRequest(http.MethodPost, "/api/v1/documents", buf.Bytes(), writer.FormDataContentType())
}

func (t *testContext) replaceTokenPlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{expired_reset_token}}", t.expiredToken)
	content = strings.ReplaceAll(content, "{{document_id}}", t.currentDocumentID.String())
	content = strings.ReplaceAll(content, "{{client_id}}", t.currentClientID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte, contentType string) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     string(bodyBytes),
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err == nil {
		t.response.body = responseBody

		// Capture created IDs so later steps can reference them
		if idStr, ok := responseBody["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				if _, hasStatus := responseBody["status"]; hasStatus {
					t.currentDocumentID = id
				} else {
					t.currentClientID = id
				}
			}
		}
		if ingested, ok := responseBody["ingested"].([]any); ok && len(ingested) > 0 {
			if first, ok := ingested[0].(map[string]any); ok {
				if idStr, ok := first["id"].(string); ok {
					if id, err := uuid.Parse(idStr); err == nil {
						t.currentDocumentID = id
					}
				}
			}
		}
	} else {
		t.response.body = string(bodyBytes)
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

// theResponseTextShouldContain asserts against the raw body, for CSV and
// other non-JSON downloads.
func (t *testContext) theResponseTextShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(t.response.raw, expected) {
		return fmt.Errorf("response text does not contain %q: %s", expected, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	actual := t.response.headers.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("header %q expected to contain %q, got %q", header, expected, actual)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entityModel, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entityModel).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	if entityModel, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entityModel).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
