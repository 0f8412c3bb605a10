package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timemgr/internal/commands"
	"timemgr/internal/config"
	"timemgr/internal/exitcode"
)

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	cmd := &commands.LoginCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if !strings.Contains(errBuf.String(), "Google Calendar API") {
		t.Errorf("expected setup instructions, got %q", errBuf.String())
	}
}

// Tokens that cannot be refreshed must not count as logged in.
func TestLoginCommand_UnusableToken(t *testing.T) {
	tokens := map[string]string{
		"no refresh token": `{"access_token":"expired","token_type":"Bearer"}`,
		"expired":          `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`,
		"corrupt":          `{"access_token":`,
	}
	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			oauthClient := `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`
			if err := os.WriteFile(filepath.Join(tmpDir, "oauth_client.json"), []byte(oauthClient), 0600); err != nil {
				t.Fatalf("failed to write oauth_client.json: %v", err)
			}
			if err := os.WriteFile(filepath.Join(tmpDir, "token.json"), []byte(token), 0600); err != nil {
				t.Fatalf("failed to write token.json: %v", err)
			}

			var outBuf, errBuf bytes.Buffer
			cfg := &config.Config{Dir: tmpDir}

			// Cancelled up front so the callback wait returns at once.
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			code := (&commands.LoginCmd{}).Run(ctx, cfg, nil, nil, &outBuf, &errBuf)
			if outBuf.String() == "already logged in\n" {
				t.Error("should not say 'already logged in' with an unusable token")
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
		})
	}
}

func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	tmpDir := t.TempDir()

	// Create oauth_client.json
	oauthClient := `{"installed":{"client_id":"test","client_secret":"test"}}`
	oauthPath := filepath.Join(tmpDir, "oauth_client.json")
	err := os.WriteFile(oauthPath, []byte(oauthClient), 0600)
	if err != nil {
		t.Fatalf("failed to write oauth_client.json: %v", err)
	}

	// Create token.json
	tokenPath := filepath.Join(tmpDir, "token.json")
	err = os.WriteFile(tokenPath, []byte(`{"access_token":"test","refresh_token":"test"}`), 0600)
	if err != nil {
		t.Fatalf("failed to write token.json: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   tmpDir,
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}

	// Verify token.json was deleted
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}

	// Verify oauth_client.json still exists
	if _, err := os.Stat(oauthPath); err != nil {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "not logged in\n" {
		t.Errorf("expected 'not logged in\\n', got %q", outBuf.String())
	}
}

func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: true,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", outBuf.String())
	}
}

func TestLogoutCommand_NotesDisabledReminders(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "token.json"), []byte(`{"refresh_token":"x"}`), 0600); err != nil {
		t.Fatalf("failed to write token.json: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:      tmpDir,
		Settings: config.Settings{Notifier: config.NotifierGoogleCalendar},
	}

	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(errBuf.String(), "note: reminders are disabled") {
		t.Errorf("unexpected stderr: %q", errBuf.String())
	}
}
