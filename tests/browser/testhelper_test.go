package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	emailPkg "eventos/internal/adapters/email"
	web "eventos/internal/adapters/http"
	"eventos/internal/adapters/http/middleware"
	"eventos/internal/adapters/http/perf"
	"eventos/internal/adapters/storage"
	accountStore "eventos/internal/adapters/storage/account"
	eventStore "eventos/internal/adapters/storage/event"
	responseStore "eventos/internal/adapters/storage/response"
	"eventos/internal/application/orchestrators"
	eventDomain "eventos/internal/domain/event"
)

const (
	testAdminEmail    = "admin@test.com"
	testAdminPassword = "TestPass123!"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
	AdminID string
	tmpDir  string
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	// Create temp directory for the database
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to initialize test DB: %v", err)
	}

	// Create stores
	acctStore := accountStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:  acctStore,
		EventStore:    eventStore.NewSQLiteStore(db),
		ResponseStore: responseStore.NewSQLiteStore(db),
	}

	// Seed admin
	ctx := context.Background()
	adminID, err := orchestrators.ExecuteCreateAccount(ctx, orchestrators.CreateAccountInput{
		Email:    testAdminEmail,
		Password: testAdminPassword,
		Role:     "admin",
	}, orchestrators.CreateAccountDeps{AccountStore: acctStore})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	// Notifications go nowhere during browser tests
	web.SetEmailSender(emailPkg.NewNoopSender(), "Eventos <noreply@test.local>", "")

	// Start HTTP server
	mux := web.NewMux("static", stores, perf.NewCollector(perf.DefaultRingSize))
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Start Playwright
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
		AdminID: adminID,
		tmpDir:  tmpDir,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login navigates to the login page and logs in as admin.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	_, err := page.Goto(a.BaseURL + "/login")
	if err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill(testAdminEmail); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill(testAdminPassword); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	// Wait for redirect to dashboard
	if err := page.WaitForURL(a.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

// createEventViaStore seeds an event owned by the admin and returns it.
func (a *testApp) createEventViaStore(t *testing.T, name string, date time.Time) eventDomain.Event {
	t.Helper()
	e, err := orchestrators.ExecuteCreateEvent(context.Background(), orchestrators.CreateEventInput{
		Name:     name,
		Date:     date,
		Location: "Salão de festas",
	}, orchestrators.Actor{AccountID: a.AdminID, Elevated: true}, orchestrators.CreateEventDeps{
		EventStore:         a.Stores.EventStore,
		GenerateID:         func() string { return uuid.New().String() },
		GenerateAccessCode: eventDomain.GenerateAccessCode,
		Now:                time.Now,
	})
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return e
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
