package client_test

import (
	"context"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"zenweb/internal/config"
	"zenweb/internal/models"
	"zenweb/internal/router"
	"zenweb/internal/service"
	"zenweb/internal/storage"
	"zenweb/internal/store"
	"zenweb/pkg/client"
)

// startServer boots the full API over in-memory storage, admin pre-seeded.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		Env:           "test",
		Origin:        "http://localhost",
		SessionSecret: "test-secret",
	}
	kv := storage.NewMemory()
	auth := service.NewAuthService(store.NewUsers(kv), cfg.SessionSecret)
	if err := auth.EnsureAdmin(context.Background(), zerolog.Nop(), "admin@admin.com", "Administrator", "admin"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	srv := httptest.NewServer(router.New(zerolog.Nop(), kv, cfg, service.NewLogSMSSender(zerolog.Nop())))
	t.Cleanup(srv.Close)
	return srv
}

func TestGuestTicketFlow(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	c := client.New(srv.URL)

	tk, err := c.CreateTicket(ctx, client.CreateTicketRequest{
		RequestType:  "technical_issue",
		IssueType:    "bug",
		Description:  "images do not load",
		ContactName:  "Guest",
		ContactEmail: "guest@example.com",
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	want := regexp.MustCompile(`^TKT-` + time.Now().Format("20060102") + `-\d{3}$`)
	if !want.MatchString(tk.TicketNumber) {
		t.Fatalf("bad ticket number %q", tk.TicketNumber)
	}
	if tk.Priority != "high" {
		t.Fatalf("bug should derive high priority, got %q", tk.Priority)
	}
}

func TestRegisterLoginAndScoping(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()

	alice := client.New(srv.URL)
	u, err := alice.Register(ctx, client.RegisterRequest{
		Email: "a@b.com", Password: "secret1", Name: "A",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != models.RoleUser {
		t.Fatalf("expected role user, got %q", u.Role)
	}
	if _, err := alice.Login(ctx, "a@b.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := alice.CreateTicket(ctx, client.CreateTicketRequest{
		RequestType: "new_project", ProjectType: "ecommerce", Description: "web shop",
	}); err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	mine, err := alice.TicketsByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("tickets by user: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(mine))
	}

	// A non-admin cannot read someone else's ticket list.
	if _, err := alice.TicketsByUser(ctx, "someone-else"); err == nil {
		t.Fatal("expected forbidden error")
	}

	// Admin sees the guestless ticket and can resolve it.
	admin := client.New(srv.URL)
	if _, err := admin.Login(ctx, "admin@admin.com", "admin"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	all, err := admin.Tickets(ctx)
	if err != nil {
		t.Fatalf("tickets: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(all))
	}
	resolved := "resolved"
	updated, err := admin.UpdateTicket(ctx, all[0].ID, client.TicketPatchRequest{Status: &resolved})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ResolvedAt == nil {
		t.Fatal("expected resolvedAt stamp")
	}
}

func TestAdminResetPasswordAndImpersonate(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()

	bob := client.New(srv.URL)
	u, err := bob.Register(ctx, client.RegisterRequest{Email: "bob@b.com", Password: "secret1", Name: "Bob"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	admin := client.New(srv.URL)
	if _, err := admin.Login(ctx, "admin@admin.com", "admin"); err != nil {
		t.Fatalf("admin login: %v", err)
	}

	temp, err := admin.ResetPassword(ctx, u.ID)
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := bob.Login(ctx, "bob@b.com", "secret1"); err == nil {
		t.Fatal("old password should no longer work")
	}
	if _, err := bob.Login(ctx, "bob@b.com", temp); err != nil {
		t.Fatalf("temp password login: %v", err)
	}

	imp, err := admin.Impersonate(ctx, u.ID)
	if err != nil {
		t.Fatalf("impersonate: %v", err)
	}
	if imp.ID != u.ID {
		t.Fatalf("impersonated wrong user: %q", imp.ID)
	}
	me, err := admin.Me(ctx)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.ID != u.ID {
		t.Fatalf("session should now belong to %q, got %q", u.ID, me.ID)
	}
}

func TestAnalyticsFlow(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()

	visitor := client.New(srv.URL)
	sid, err := visitor.RecordPageView(ctx, "", "/", "")
	if err != nil {
		t.Fatalf("pageview: %v", err)
	}
	if sid == "" {
		t.Fatal("expected a session id")
	}
	if _, err := visitor.RecordPageView(ctx, sid, "/pricing", "/"); err != nil {
		t.Fatalf("pageview: %v", err)
	}

	admin := client.New(srv.URL)
	if _, err := admin.Login(ctx, "admin@admin.com", "admin"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	sum, err := admin.AnalyticsSummary(ctx, 7)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalViews != 2 || sum.UniqueSessions != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}

	// Exclude the caller's IP; further hits are acknowledged but dropped.
	myIP, err := admin.MyIP(ctx)
	if err != nil {
		t.Fatalf("my-ip: %v", err)
	}
	if _, err := admin.SetExcludedIPs(ctx, []string{myIP}); err != nil {
		t.Fatalf("set excluded: %v", err)
	}
	if _, err := visitor.RecordPageView(ctx, sid, "/contact", ""); err != nil {
		t.Fatalf("pageview: %v", err)
	}
	sum, err = admin.AnalyticsSummary(ctx, 7)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalViews != 2 {
		t.Fatalf("excluded hit was recorded, views=%d", sum.TotalViews)
	}
}

func TestSettingsAndTestSMS(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()

	admin := client.New(srv.URL)
	if _, err := admin.Login(ctx, "admin@admin.com", "admin"); err != nil {
		t.Fatalf("admin login: %v", err)
	}

	// SMS defaults to disabled; test-sms refuses.
	if err := admin.TestSMS(ctx, ""); err == nil {
		t.Fatal("expected disabled-sms error")
	}

	if _, err := admin.UpdateSettings(ctx, models.Settings{
		SMSEnabled: true, NotifyPhone: "+15550100", ExcludedIPs: []string{},
	}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if err := admin.TestSMS(ctx, ""); err != nil {
		t.Fatalf("test sms: %v", err)
	}
}
