//go:build blackbox

package blackbox

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestSnipRegion_AppendsCSVRows(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "snip", "csv", "journal.csv")
	chart := writeChart(t, dir, 1920, 1080)

	for _, ticker := range []string{"asels", "thyao"} {
		out := run(t, "--config", cfg, "snip",
			"--image", chart,
			"--region", "100,100,400,300",
			"--ticker", ticker,
			"--note", "breakout retest",
		)
		if !contains(out, "✓") {
			t.Fatalf("expected a saved entry, got:\n%s", out)
		}
	}

	f, err := os.Open(filepath.Join(dir, "journal.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if got := rows[0][2]; got != "Ticker/Instrument" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][2] != "ASELS" || rows[2][2] != "THYAO" {
		t.Fatalf("unexpected tickers %q %q", rows[1][2], rows[2][2])
	}

	img := decodePNG(t, rows[1][4])
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("expected 300x200 capture, got %v", b)
	}

	last, err := os.ReadFile(filepath.Join(dir, "last_ticker.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(last) != "THYAO" {
		t.Fatalf("last ticker = %q", last)
	}
}

func TestSnipRegion_TooSmallWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "snip", "csv", "journal.csv")
	chart := writeChart(t, dir, 200, 200)

	out := runFail(t, "--config", cfg, "snip",
		"--image", chart, "--region", "10,10,15,80", "--ticker", "ASELS")
	if !contains(out, "smaller than") {
		t.Fatalf("expected size error, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "journal.csv")); !os.IsNotExist(err) {
		t.Fatalf("journal should not exist: %v", err)
	}
}

func TestSnipRegion_LockedJournal(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "snip", "csv", "journal.csv")
	chart := writeChart(t, dir, 200, 200)

	lock := filepath.Join(dir, "~$journal.csv")
	if err := os.WriteFile(lock, []byte("owner"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := runFail(t, "--config", cfg, "snip",
		"--image", chart, "--region", "0,0,100,100", "--ticker", "ASELS")
	if !contains(out, "open in another program") {
		t.Fatalf("expected locked error, got:\n%s", out)
	}

	if err := os.Remove(lock); err != nil {
		t.Fatal(err)
	}
	run(t, "--config", cfg, "snip",
		"--image", chart, "--region", "0,0,100,100", "--ticker", "ASELS")

	out = run(t, "--config", cfg, "journal", "list")
	if !contains(out, "1 entries") {
		t.Fatalf("expected exactly one entry after retry, got:\n%s", out)
	}
}
