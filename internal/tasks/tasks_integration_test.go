package tasks_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/tasknest/TN-Backend/internal/db"
	"github.com/tasknest/TN-Backend/internal/tasks"
	"github.com/tasknest/TN-Backend/internal/users"
)

var dbAvailable bool

var testServer *httptest.Server

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		os.Exit(m.Run())
	}

	db.Connect(databaseURL)
	dbAvailable = true

	users.Init()
	tasks.Init()

	// Mount both feature routers under /api, matching production setup in main.go.
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Route("/api", func(api chi.Router) {
		api.Mount("/tasks", tasks.SetupRoutes(users.UserInfo{}))
		api.Mount("/", users.SetupRoutes())
	})

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// taskPayload mirrors the Task JSON shape handlers return.
type taskPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DueDate  string `json:"dueDate"`
	Category string `json:"category"`
}

// registeredClient registers a fresh user and returns a cookie-jar client
// holding its identity cookie, plus the user's email. User and task rows are
// cleaned up afterwards.
func registeredClient(t *testing.T, username string) (*http.Client, string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	email := fmt.Sprintf("taskuser_%s@example.com", uuid.New().String()[:8])
	t.Cleanup(func() {
		var user users.User
		if err := db.DB.First(&user, "email = ?", email).Error; err == nil {
			db.DB.Where("user_id = ?", user.UserID).Delete(&tasks.Task{})
			db.DB.Delete(&user)
		}
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	client := &http.Client{Jar: jar}

	body, _ := json.Marshal(map[string]string{"email": email, "username": username})
	resp, err := client.Post(testServer.URL+"/api/users", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/users: %v", err)
	}
	respBody := readBody(t, resp)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("registration failed: %d %s", resp.StatusCode, respBody)
	}
	return client, email
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

// createTask posts a task and returns the decoded response payload.
func createTask(t *testing.T, client *http.Client, name, dueDate, category string) taskPayload {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"task":     name,
		"dueDate":  dueDate,
		"category": category,
	})
	resp, err := client.Post(testServer.URL+"/api/tasks", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/tasks: %v", err)
	}
	respBody := readBody(t, resp)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d; body: %s", resp.StatusCode, respBody)
	}

	var task taskPayload
	if err := json.Unmarshal([]byte(respBody), &task); err != nil {
		t.Fatalf("invalid task JSON: %s", respBody)
	}
	return task
}

// TestCreateTaskOwnedBySession verifies a created task is bound to the
// session user's row.
func TestCreateTaskOwnedBySession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	client, email := registeredClient(t, "Ann")

	created := createTask(t, client, "Write report", "2026-09-15", tasks.CategoryWork)

	if created.ID == "" {
		t.Fatal("expected generated task ID")
	}
	if created.Name != "Write report" {
		t.Errorf("expected name %q, got %q", "Write report", created.Name)
	}
	if created.Category != tasks.CategoryWork {
		t.Errorf("expected category %q, got %q", tasks.CategoryWork, created.Category)
	}

	var owner users.User
	if err := db.DB.First(&owner, "email = ?", email).Error; err != nil {
		t.Fatalf("owner row not found: %v", err)
	}
	var row tasks.Task
	if err := db.DB.First(&row, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("task row not found: %v", err)
	}
	if row.UserID != owner.UserID {
		t.Errorf("task owner: expected %q, got %q", owner.UserID, row.UserID)
	}
}

// TestCreateTaskRequiresSession verifies POST /api/tasks without a cookie is 401.
func TestCreateTaskRequiresSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	body := bytes.NewReader([]byte(`{"task":"Nope","dueDate":"2026-09-15","category":"Work"}`))
	resp, err := http.Post(testServer.URL+"/api/tasks", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/tasks: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

// TestTaskLifecycle runs the full create → get → update → delete → 404 cycle
// through the HTTP surface.
func TestTaskLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	client, _ := registeredClient(t, "Ann")

	created := createTask(t, client, "Book flights", "2026-10-01", tasks.CategoryPersonal)
	taskURL := testServer.URL + "/api/tasks/" + created.ID

	// GET returns the task.
	getResp, err := client.Get(taskURL)
	if err != nil {
		t.Fatalf("GET task: %v", err)
	}
	getBody := readBody(t, getResp)
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", getResp.StatusCode, getBody)
	}

	// PUT updates every field.
	update, _ := json.Marshal(map[string]string{
		"name":     "Book flights and hotel",
		"dueDate":  "2026-10-05",
		"category": tasks.CategoryUrgent,
	})
	putReq, _ := http.NewRequest(http.MethodPut, taskURL, bytes.NewReader(update))
	putReq.Header.Set("Content-Type", "application/json")
	putResp, err := client.Do(putReq)
	if err != nil {
		t.Fatalf("PUT task: %v", err)
	}
	putBody := readBody(t, putResp)
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", putResp.StatusCode, putBody)
	}
	var updated taskPayload
	if err := json.Unmarshal([]byte(putBody), &updated); err != nil {
		t.Fatalf("invalid task JSON: %s", putBody)
	}
	if updated.Name != "Book flights and hotel" || updated.Category != tasks.CategoryUrgent {
		t.Errorf("update not reflected: %+v", updated)
	}

	// DELETE removes it.
	delReq, _ := http.NewRequest(http.MethodDelete, taskURL, nil)
	delResp, err := client.Do(delReq)
	if err != nil {
		t.Fatalf("DELETE task: %v", err)
	}
	readBody(t, delResp)
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from delete, got %d", delResp.StatusCode)
	}

	// GET now 404s.
	goneResp, err := client.Get(taskURL)
	if err != nil {
		t.Fatalf("GET deleted task: %v", err)
	}
	readBody(t, goneResp)
	if goneResp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", goneResp.StatusCode)
	}
}

// TestListTasksScopedToUser verifies GET /api/tasks only returns the session
// user's rows, soonest due first.
func TestListTasksScopedToUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	ann, _ := registeredClient(t, "Ann")
	bob, _ := registeredClient(t, "Bob")

	createTask(t, ann, "Later", "2026-12-01", tasks.CategoryWork)
	createTask(t, ann, "Sooner", "2026-09-01", tasks.CategoryWork)
	createTask(t, bob, "Bob's task", "2026-09-02", tasks.CategoryPersonal)

	resp, err := ann.Get(testServer.URL + "/api/tasks")
	if err != nil {
		t.Fatalf("GET /api/tasks: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", resp.StatusCode, body)
	}

	var list []taskPayload
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("invalid list JSON: %s", body)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 tasks for Ann, got %d: %s", len(list), body)
	}
	if list[0].Name != "Sooner" || list[1].Name != "Later" {
		t.Errorf("expected due-date ordering, got %q then %q", list[0].Name, list[1].Name)
	}
}

// TestTaskCrossUserAccess verifies another user's task reads as 404 for get,
// update and delete alike.
func TestTaskCrossUserAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	ann, _ := registeredClient(t, "Ann")
	bob, _ := registeredClient(t, "Bob")

	created := createTask(t, ann, "Private", "2026-09-20", tasks.CategoryPersonal)
	taskURL := testServer.URL + "/api/tasks/" + created.ID

	getResp, err := bob.Get(taskURL)
	if err != nil {
		t.Fatalf("GET task: %v", err)
	}
	readBody(t, getResp)
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for cross-user get, got %d", getResp.StatusCode)
	}

	update := bytes.NewReader([]byte(`{"name":"Hijacked","dueDate":"2026-09-21","category":"Work"}`))
	putReq, _ := http.NewRequest(http.MethodPut, taskURL, update)
	putReq.Header.Set("Content-Type", "application/json")
	putResp, err := bob.Do(putReq)
	if err != nil {
		t.Fatalf("PUT task: %v", err)
	}
	readBody(t, putResp)
	if putResp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for cross-user update, got %d", putResp.StatusCode)
	}

	delReq, _ := http.NewRequest(http.MethodDelete, taskURL, nil)
	delResp, err := bob.Do(delReq)
	if err != nil {
		t.Fatalf("DELETE task: %v", err)
	}
	readBody(t, delResp)
	if delResp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for cross-user delete, got %d", delResp.StatusCode)
	}

	// Ann still sees it.
	annResp, err := ann.Get(taskURL)
	if err != nil {
		t.Fatalf("GET task as owner: %v", err)
	}
	readBody(t, annResp)
	if annResp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for owner get, got %d", annResp.StatusCode)
	}
}

// TestGetTaskUnknownID verifies a random ID is a 404, not a 500.
func TestGetTaskUnknownID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	client, _ := registeredClient(t, "Ann")

	resp, err := client.Get(testServer.URL + "/api/tasks/" + uuid.NewString())
	if err != nil {
		t.Fatalf("GET task: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
