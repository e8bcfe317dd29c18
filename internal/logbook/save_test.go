package logbook

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movielog/internal/config"
	"movielog/internal/history"
	"movielog/internal/services"
)

func readNote(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestSaveCreatesNote(t *testing.T) {
	h := newHarness(t)
	res, err := h.svc.Save(context.Background(), h.heat(t), SaveOptions{})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	want := filepath.Join(h.vault, "Heat (1995).md")
	if !res.Success || res.Path != want || res.Action != history.ActionCreated {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Message != "Successfully logged movie to: "+want {
		t.Fatalf("unexpected message %q", res.Message)
	}

	content := readNote(t, want)
	if content != res.Content {
		t.Fatal("expected result content to match the file")
	}
	for _, fragment := range []string{
		"title: \"Heat\"\n",
		"your_rating: \"9\"\n",
		"media_type: \"Movie\"\n",
		"  - \"heist\"\n",
		"*Logged via MovieLoggerApp on 10/17/2026*\n",
	} {
		if !strings.Contains(content, fragment) {
			t.Errorf("expected %q in note:\n%s", fragment, content)
		}
	}
	if strings.Contains(content, "Poster Image") {
		t.Errorf("expected N/A poster to be omitted:\n%s", content)
	}

	if len(h.history.entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(h.history.entries))
	}
	entry := h.history.entries[0]
	if entry.FileName != "Heat (1995).md" || entry.VaultDir != h.vault || entry.IMDbID != "tt0113277" || entry.Action != history.ActionCreated {
		t.Fatalf("unexpected history entry %+v", entry)
	}
}

func TestSaveWithoutVault(t *testing.T) {
	h := newHarness(t)
	h.cfg.Paths.VaultDir = ""
	res, err := h.svc.Save(context.Background(), h.heat(t), SaveOptions{})
	if res.Success || res.Message != MsgVaultNotConfigured {
		t.Fatalf("unexpected result %+v", res)
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSaveConflictPolicies(t *testing.T) {
	tests := []struct {
		policy      string
		wantSuccess bool
		wantAction  history.Action
		wantName    string
		wantMessage string
		wantBody    string
	}{
		{config.ConflictOverwrite, true, history.ActionOverwritten, "Heat (1995).md", "Overwrote existing file: ", "your_rating"},
		{config.ConflictCopy, true, history.ActionCopied, "Heat (1995) (1).md", "Saved as: ", "original"},
		{config.ConflictCancel, false, "", "", MsgSaveCanceled, "original"},
		{config.ConflictAsk, false, "", "", MsgSaveCanceled, "original"},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			h := newHarness(t)
			original := filepath.Join(h.vault, "Heat (1995).md")
			if err := os.WriteFile(original, []byte("original"), 0o644); err != nil {
				t.Fatal(err)
			}

			res, err := h.svc.Save(context.Background(), h.heat(t), SaveOptions{OnConflict: tt.policy})
			if err != nil {
				t.Fatalf("Save returned error: %v", err)
			}
			if res.Success != tt.wantSuccess || res.Action != tt.wantAction {
				t.Fatalf("unexpected result %+v", res)
			}
			if !strings.HasPrefix(res.Message, tt.wantMessage) {
				t.Fatalf("message %q, want prefix %q", res.Message, tt.wantMessage)
			}
			if tt.wantName != "" {
				if res.Path != filepath.Join(h.vault, tt.wantName) {
					t.Fatalf("path %q, want %s", res.Path, tt.wantName)
				}
				if !strings.HasSuffix(res.Message, res.Path) {
					t.Fatalf("expected message to name the path, got %q", res.Message)
				}
			}
			if body := readNote(t, original); !strings.Contains(body, tt.wantBody) {
				t.Fatalf("original file = %q, want it to contain %q", body, tt.wantBody)
			}
			if !tt.wantSuccess && len(h.history.entries) != 0 {
				t.Fatal("canceled save must not be recorded")
			}
		})
	}
}

func TestSaveUsesConfiguredPolicy(t *testing.T) {
	h := newHarness(t)
	h.cfg.Vault.OnConflict = config.ConflictCopy
	rec := h.heat(t)
	for i := 0; i < 3; i++ {
		if _, err := h.svc.Save(context.Background(), rec, SaveOptions{}); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"Heat (1995).md", "Heat (1995) (1).md", "Heat (1995) (2).md"} {
		if _, err := os.Stat(filepath.Join(h.vault, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestSaveAsksPrompter(t *testing.T) {
	var asked []Conflict
	h := newHarness(t, WithPrompter(PrompterFunc(func(_ context.Context, c Conflict) (Decision, error) {
		asked = append(asked, c)
		return DecisionCopy, nil
	})))
	rec := h.heat(t)
	if _, err := h.svc.Save(context.Background(), rec, SaveOptions{}); err != nil {
		t.Fatal(err)
	}
	res, err := h.svc.Save(context.Background(), rec, SaveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(asked) != 1 || asked[0].FileName != "Heat (1995).md" {
		t.Fatalf("expected one prompt for the taken name, got %+v", asked)
	}
	if res.Action != history.ActionCopied {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSavePrompterErrorCancels(t *testing.T) {
	h := newHarness(t, WithPrompter(PrompterFunc(func(context.Context, Conflict) (Decision, error) {
		return DecisionOverwrite, errors.New("input closed")
	})))
	rec := h.heat(t)
	if _, err := h.svc.Save(context.Background(), rec, SaveOptions{}); err != nil {
		t.Fatal(err)
	}
	res, err := h.svc.Save(context.Background(), rec, SaveOptions{})
	if res.Success || res.Message != MsgSaveCanceled {
		t.Fatalf("unexpected result %+v", res)
	}
	if !errors.Is(err, services.ErrCanceled) {
		t.Fatalf("expected canceled marker, got %v", err)
	}
}

func TestSaveDryRunWritesNothing(t *testing.T) {
	h := newHarness(t)
	res, err := h.svc.Save(context.Background(), h.heat(t), SaveOptions{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || !strings.HasPrefix(res.Message, "Dry run") || !strings.Contains(res.Content, "## Summary") {
		t.Fatalf("unexpected result %+v", res)
	}
	entries, err := os.ReadDir(h.vault)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 || len(h.history.entries) != 0 {
		t.Fatal("dry run must not touch the vault or history")
	}
}

func TestSaveHistoryFailureIsBestEffort(t *testing.T) {
	h := newHarness(t)
	h.history.err = errors.New("database is locked")
	res, err := h.svc.Save(context.Background(), h.heat(t), SaveOptions{})
	if err != nil || !res.Success {
		t.Fatalf("history failure must not fail the save: %+v %v", res, err)
	}
}

func TestLinePrompter(t *testing.T) {
	tests := []struct {
		input string
		want  Decision
	}{
		{"o\n", DecisionOverwrite},
		{"Create Copy\n", DecisionCopy},
		{"\n", DecisionCancel},
		{"", DecisionCancel},
		{"what\nc\n", DecisionCopy},
		{"x\ny\nz\no\n", DecisionCancel},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := LinePrompter{In: strings.NewReader(tt.input), Out: &out}
		got, err := p.ResolveConflict(context.Background(), Conflict{FileName: "Heat (1995).md"})
		if err != nil {
			t.Fatalf("input %q: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("input %q: got %s, want %s", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), `File "Heat (1995).md" already exists.`) {
			t.Errorf("missing conflict banner in %q", out.String())
		}
	}
}
