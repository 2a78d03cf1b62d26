package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ironsheep/wallpaper-theme/internal/theme"
)

func writeSolidPNG(t *testing.T, name string, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writePNGAt(t, path, c)
	return path
}

func writePNGAt(t *testing.T, path string, c color.Color) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

func TestOptionsCentrality(t *testing.T) {
	tests := []struct {
		name     string
		opts     options
		required bool
		want     theme.Centrality
		wantErr  bool
	}{
		{"average", options{average: true}, true, theme.Average, false},
		{"median", options{median: true}, true, theme.Median, false},
		{"prevalent", options{prevalent: true}, true, theme.Prevalent, false},
		{"none required", options{}, true, 0, true},
		{"none optional", options{}, false, theme.Average, false},
		{"two modes", options{average: true, prevalent: true}, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.centrality(tt.required)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRunThemes_Lines(t *testing.T) {
	path := writeSolidPNG(t, "gray.png", color.RGBA{200, 200, 200, 255})

	var out bytes.Buffer
	if err := runThemes(context.Background(), []string{"--median", path}, &out, false); err != nil {
		t.Fatalf("runThemes failed: %v", err)
	}

	want := "# " + path + " (median)\n" +
		"bg_normal #c8c8c8\n" +
		"bg_focus  #c8c8c8\n" +
		"fg_focus  #000000\n" +
		"fg_normal #3c3c3c\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRunThemes_MultiplePathsInOrder(t *testing.T) {
	red := writeSolidPNG(t, "red.png", color.RGBA{255, 0, 0, 255})
	dark := writeSolidPNG(t, "dark.png", color.RGBA{10, 10, 10, 255})

	var out bytes.Buffer
	if err := runThemes(context.Background(), []string{"-p", red, dark}, &out, false); err != nil {
		t.Fatalf("runThemes failed: %v", err)
	}

	got := out.String()
	first, second := strings.Index(got, red), strings.Index(got, dark)
	if first < 0 || second < 0 || first > second {
		t.Fatalf("themes not printed in argument order:\n%s", got)
	}
	if !strings.Contains(got, "bg_focus  #00ffff") {
		t.Errorf("missing complementary of red:\n%s", got)
	}
	if !strings.Contains(got, "fg_normal #c3c3c3") {
		t.Errorf("missing light normal text for dark wallpaper:\n%s", got)
	}
}

func TestRunThemes_JSON(t *testing.T) {
	path := writeSolidPNG(t, "red.png", color.RGBA{255, 0, 0, 255})

	var out bytes.Buffer
	if err := runThemes(context.Background(), []string{"--average", "--json", path}, &out, false); err != nil {
		t.Fatalf("runThemes failed: %v", err)
	}

	var got struct {
		Path       string `json:"path"`
		Centrality string `json:"centrality"`
		Secondary  struct {
			Hex string `json:"hex"`
		} `json:"secondary"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if got.Path != path || got.Centrality != "average" || got.Secondary.Hex != "00ffff" {
		t.Errorf("unexpected report: %+v", got)
	}
}

func TestRunThemes_Errors(t *testing.T) {
	path := writeSolidPNG(t, "ok.png", color.RGBA{1, 2, 3, 255})

	tests := []struct {
		name string
		args []string
	}{
		{"no mode", []string{path}},
		{"two modes", []string{"-a", "-m", path}},
		{"no image", []string{"--median"}},
		{"unknown flag", []string{"--loudest", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := runThemes(context.Background(), tt.args, &out, false); err == nil {
				t.Error("expected an error")
			}
			if out.Len() != 0 {
				t.Errorf("nothing should be printed, got %q", out.String())
			}
		})
	}
}

func TestRunThemes_DecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	var out bytes.Buffer
	err := runThemes(context.Background(), []string{"-a", path}, &out, false)
	if !errors.Is(err, theme.ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestParseInterspersed(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantPaths []string
		wantEdge  int
	}{
		{"flags first", []string{"-m", "--max-edge", "50", "a.png", "b.png"}, []string{"a.png", "b.png"}, 50},
		{"flags last", []string{"a.png", "b.png", "-m", "--max-edge=50"}, []string{"a.png", "b.png"}, 50},
		{"flags between", []string{"a.png", "--max-edge", "50", "b.png", "-m"}, []string{"a.png", "b.png"}, 50},
		{"terminator", []string{"-m", "a.png", "--", "-b.png", "--json"}, []string{"a.png", "-b.png", "--json"}, 1000},
		{"no paths", []string{"-m"}, nil, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o options
			paths, err := parseInterspersed(newFlagSet("test", &o), tt.args)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if strings.Join(paths, ",") != strings.Join(tt.wantPaths, ",") {
				t.Errorf("paths: got %q, want %q", paths, tt.wantPaths)
			}
			if !o.median {
				t.Error("--median not parsed")
			}
			if o.maxEdge != tt.wantEdge {
				t.Errorf("maxEdge: got %d, want %d", o.maxEdge, tt.wantEdge)
			}
			if o.json {
				t.Error("--json after the terminator must be a path")
			}
		})
	}
}

func TestRunThemes_FlagsAfterImage(t *testing.T) {
	path := writeSolidPNG(t, "red.png", color.RGBA{255, 0, 0, 255})

	var out bytes.Buffer
	if err := runThemes(context.Background(), []string{path, "--average"}, &out, false); err != nil {
		t.Fatalf("runThemes failed: %v", err)
	}
	if !strings.Contains(out.String(), "bg_normal #ff0000") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

// lockedBuffer is a bytes.Buffer safe for one writer and one polling reader.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, out *lockedBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), want) {
		if time.Now().After(deadline) {
			t.Fatalf("output never contained %q:\n%s", want, out.String())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestRunThemes_WatchReprintsChangedImage(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writePNGAt(t, "wall.png", color.RGBA{255, 0, 0, 255})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- runThemes(ctx, []string{"wall.png", "--prevalent", "--watch"}, out, false)
	}()

	waitForOutput(t, out, "bg_normal #ff0000")

	// Replace the file the way wallpaper setters do.
	writePNGAt(t, ".wall.tmp", color.RGBA{0, 0, 255, 255})
	if err := os.Rename(".wall.tmp", "wall.png"); err != nil {
		t.Fatalf("failed to rename: %v", err)
	}

	// A stale cache entry would print red again.
	waitForOutput(t, out, "bg_normal #0000ff")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runThemes failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runThemes did not stop after cancel")
	}

	got := out.String()
	if n := strings.Count(got, "# wall.png (prevalent)\n"); n < 2 {
		t.Errorf("want the reprint labelled with the path as given, got %d headers:\n%s", n, got)
	}
	if strings.Contains(got, dir) {
		t.Errorf("reprint labelled with an absolute path:\n%s", got)
	}
}
