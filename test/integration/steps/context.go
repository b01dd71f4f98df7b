// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scope3-tracker/backend/internal/application/usecase/coverage"
	"github.com/scope3-tracker/backend/internal/application/usecase/dashboard"
	"github.com/scope3-tracker/backend/internal/application/usecase/entry"
	"github.com/scope3-tracker/backend/internal/application/usecase/export"
	"github.com/scope3-tracker/backend/internal/infra/server/router"
	"github.com/scope3-tracker/backend/internal/integration/adapters"
	"github.com/scope3-tracker/backend/internal/integration/email"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/scope3-tracker/backend/internal/integration/persistence"
	"github.com/scope3-tracker/backend/internal/integration/persistence/model"
	"github.com/scope3-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret     = "test-jwt-secret-key-for-testing-purposes"
	testBillingAPIKey = "test-billing-api-key"

	entitlementPattern = "/v1/companies/*/entitlements/emissions_ledger"
)

// usProfessionalServicesFactor mirrors the shipped US catalog value so that
// seeded rows carry the same snapshot the validator would capture.
var usProfessionalServicesFactor = decimal.RequireFromString("0.000092")

var (
	serverInit     sync.Once
	portInit       sync.Once
	testDB         *mock.Db
	testServerPort int
	testClock      = mock.NewTime()
	testBilling    *mock.ApiMock
	billingInit    sync.Once
)

type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	billing    *mock.ApiMock
	serverPort int

	accessToken      string
	currentUserID    uuid.UUID
	currentCompanyID uuid.UUID
	companies        map[string]uuid.UUID
	entryIDs         []uuid.UUID
	lastEntryID      uuid.UUID
}

type response struct {
	status  int
	body    any
	raw     []byte
	headers http.Header
}

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func initializeBilling() {
	billingInit.Do(func() {
		testBilling = mock.NewApiServer()
		testBilling.Start()
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()
	initializeBilling()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		billing:    testBilling,
		serverPort: testServerPort,
		db: mock.NewDb("scope3_tracker", map[string]any{
			"entries":     &model.EntryModel{},
			"email_queue": &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// Auth setup steps
	ctx.Given(`^I am logged in as a member of company "([^"]*)"$`, test.iAmLoggedInAsAMemberOfCompany)
	ctx.Given(`^I am logged in as a member of another company$`, test.iAmLoggedInAsAMemberOfAnotherCompany)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Billing setup steps
	ctx.Given(`^the emissions ledger feature is unlocked$`, test.theFeatureIsUnlocked)
	ctx.Given(`^the emissions ledger feature is locked$`, test.theFeatureIsLocked)
	ctx.Given(`^the billing service is unavailable$`, test.theBillingServiceIsUnavailable)

	// Entry seeding steps
	ctx.Given(`^a spend entry exists for (\d+)-(\d+) with amount "([^"]*)"$`, test.aSpendEntryExistsForWithAmount)
	ctx.Given(`^an actual entry exists for (\d+)-(\d+) with emissions "([^"]*)"$`, test.anActualEntryExistsForWithEmissions)
	ctx.Given(`^a spend entry exists for (\d+) without a month with amount "([^"]*)"$`, test.aSpendEntryExistsWithoutAMonth)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response body should contain "([^"]*)"$`, test.theResponseBodyShouldContain)
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
	t.currentUserID = uuid.Nil
	t.currentCompanyID = uuid.Nil
	t.companies = make(map[string]uuid.UUID)
	t.entryIDs = nil
	t.lastEntryID = uuid.Nil
	t.response = nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	// Flush the entitlement cache so billing stubs from the previous
	// scenario cannot leak through cached answers.
	_ = mock.ClearRedis(mock.NewRedis())
	t.billing.ClearResponses(http.MethodGet, "/v1/companies")
	testClock.SetCurrentTime(time.Now())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Repositories
			entryRepo := persistence.NewEntryRepository(testDB.DbConn)
			emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)

			// Adapters/services
			tokenService := adapters.NewTokenService(testJWTSecret)
			entitlementService := adapters.NewEntitlementService(
				testBilling.GetUrl(),
				testBillingAPIKey,
				2*time.Second,
				mock.NewRedis(),
				time.Minute,
			)
			emailService := email.NewService(emailQueueRepo, "http://localhost:3000")

			// Entry use cases
			listEntriesUseCase := entry.NewListEntriesUseCase(entryRepo)
			createEntryUseCase := entry.NewCreateEntryUseCase(entryRepo, entitlementService, testClock)
			bulkCreateEntriesUseCase := entry.NewBulkCreateEntriesUseCase(entryRepo, entitlementService, testClock)
			updateEntryUseCase := entry.NewUpdateEntryUseCase(entryRepo, entitlementService, testClock)
			deleteEntryUseCase := entry.NewDeleteEntryUseCase(entryRepo, entitlementService)

			// Coverage use cases
			getRemindersUseCase := coverage.NewGetRemindersUseCase(entryRepo, testClock, "previous")
			queueDigestUseCase := coverage.NewQueueDigestUseCase(
				entryRepo,
				emailService,
				entitlementService,
				testClock,
				"previous",
				"http://localhost:3000/dashboard",
			)

			// Dashboard and export use cases
			getSummaryUseCase := dashboard.NewGetSummaryUseCase(entryRepo)
			exportReportUseCase := export.NewExportReportUseCase(entryRepo, entitlementService)

			// Controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})
			entryController := controller.NewEntryController(
				listEntriesUseCase,
				createEntryUseCase,
				bulkCreateEntriesUseCase,
				updateEntryUseCase,
				deleteEntryUseCase,
			)
			coverageController := controller.NewCoverageController(getRemindersUseCase, queueDigestUseCase)
			dashboardController := controller.NewDashboardController(getSummaryUseCase)
			reportController := controller.NewReportController(exportReportUseCase)

			// Middleware
			digestRateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				entryController,
				coverageController,
				dashboardController,
				reportController,
				digestRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
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

func (t *testContext) theCurrentDateIs(date string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date '%s': %w", date, err)
	}
	testClock.SetCurrentTime(parsed.UTC())
	return nil
}

func (t *testContext) iAmLoggedInAsAMemberOfCompany(companyName string) error {
	companyID, ok := t.companies[companyName]
	if !ok {
		companyID = uuid.New()
		t.companies[companyName] = companyID
	}
	return t.logIn(companyID)
}

func (t *testContext) iAmLoggedInAsAMemberOfAnotherCompany() error {
	return t.logIn(uuid.New())
}

// logIn mints an access token the way the identity provider would. The
// backend only ever validates tokens, so signing happens here in the tests.
func (t *testContext) logIn(companyID uuid.UUID) error {
	t.currentUserID = uuid.New()
	t.currentCompanyID = companyID

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"company_id": companyID.String(),
		"email":      "reporter@example.com",
		"exp":        jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"sub":        t.currentUserID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign access token: %w", err)
	}
	t.accessToken = signed
	return nil
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

func (t *testContext) theFeatureIsUnlocked() error {
	t.billing.SetResponse(-1, http.MethodGet, entitlementPattern, http.StatusOK, map[string]any{
		"feature":  "emissions_ledger",
		"unlocked": true,
	})
	return nil
}

func (t *testContext) theFeatureIsLocked() error {
	t.billing.SetResponse(-1, http.MethodGet, entitlementPattern, http.StatusOK, map[string]any{
		"feature":  "emissions_ledger",
		"unlocked": false,
	})
	return nil
}

func (t *testContext) theBillingServiceIsUnavailable() error {
	t.billing.SetResponse(-1, http.MethodGet, entitlementPattern, http.StatusInternalServerError, map[string]any{
		"error": "internal error",
	})
	return nil
}

func (t *testContext) aSpendEntryExistsForWithAmount(year, month int, amount string) error {
	spend, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}
	return t.seedSpendEntry(year, &month, spend)
}

func (t *testContext) aSpendEntryExistsWithoutAMonth(year int, amount string) error {
	spend, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}
	return t.seedSpendEntry(year, nil, spend)
}

func (t *testContext) seedSpendEntry(year int, month *int, spend decimal.Decimal) error {
	entryID := uuid.New()
	t.lastEntryID = entryID
	t.entryIDs = append(t.entryIDs, entryID)

	factorValue := usProfessionalServicesFactor
	factorYear := 2022
	now := time.Now().UTC()

	entryModel := &model.EntryModel{
		ID:              entryID,
		CompanyID:       t.currentCompanyID,
		UserID:          t.currentUserID,
		Year:            year,
		Month:           month,
		SpendCountry:    "US",
		SpendRegion:     "CA",
		Method:          "spend_based",
		SpendAmount:     &spend,
		Currency:        "USD",
		CategoryID:      "professional_services",
		CategoryLabel:   "Professional services",
		FactorValue:     &factorValue,
		FactorYear:      &factorYear,
		FactorSource:    "US EPA, Supply Chain Greenhouse Gas Emission Factors v1.2 (USEEIO)",
		FactorModel:     "USEEIO v2.0",
		FactorGeography: "United States",
		FactorCurrency:  "USD",
		Emissions:       spend.Mul(factorValue),
		VendorName:      "Acme Consulting",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return t.db.DbConn.Create(entryModel).Error
}

func (t *testContext) anActualEntryExistsForWithEmissions(year, month int, emissions string) error {
	reported, err := decimal.NewFromString(emissions)
	if err != nil {
		return fmt.Errorf("invalid emissions '%s': %w", emissions, err)
	}

	entryID := uuid.New()
	t.lastEntryID = entryID
	t.entryIDs = append(t.entryIDs, entryID)

	now := time.Now().UTC()
	entryModel := &model.EntryModel{
		ID:              entryID,
		CompanyID:       t.currentCompanyID,
		UserID:          t.currentUserID,
		Year:            year,
		Month:           &month,
		SpendCountry:    "US",
		SpendRegion:     "CA",
		Method:          "actual",
		CategoryID:      "logistics",
		CategoryLabel:   "Freight & logistics",
		Emissions:       reported,
		EmissionsSource: "Carrier sustainability report",
		VendorName:      "Fast Freight Inc",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return t.db.DbConn.Create(entryModel).Error
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{entry_id}}", t.lastEntryID.String())
	content = strings.ReplaceAll(content, "{{company_id}}", t.currentCompanyID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
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

	req.Header.Set("Content-Type", "application/json")

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
		raw:     bodyBytes,
		headers: resp.Header,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody

		// Capture the entry ID from create/update responses so later
		// steps can reference it through {{entry_id}}.
		if idStr, ok := responseBody["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastEntryID = id
				t.entryIDs = append(t.entryIDs, id)
			}
		}
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

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("response body does not contain '%s': %s", expected, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := t.response.headers.Get(header)
	if !strings.Contains(value, expected) {
		return fmt.Errorf("response header '%s' is '%s', expected it to contain '%s'", header, value, expected)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
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

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
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
