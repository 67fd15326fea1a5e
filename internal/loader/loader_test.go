package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formspec/pkg/source"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(`{"title":"T"}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(source.LoaderOptions{}).Load(context.Background(), source.FromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"title":"T"}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{"specs/form.yaml": {Data: []byte("title: T\n")}}
	l := New(source.NewLoaderOptions(source.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), source.FromFS("specs/form.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != source.FormatYAML {
		t.Fatalf("expected yaml format")
	}

	if _, err := New(source.LoaderOptions{}).Load(context.Background(), source.FromFS("specs/form.yaml")); err == nil {
		t.Fatalf("expected error without fs")
	}
}

func TestLoadHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"title":"Remote"}`))
	}))
	defer srv.Close()

	disabled := New(source.LoaderOptions{})
	if _, err := disabled.Load(context.Background(), source.MustFromURL(srv.URL+"/form.json")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := New(source.NewLoaderOptions(source.WithHTTPClient(srv.Client())))
	doc, err := l.Load(context.Background(), source.MustFromURL(srv.URL+"/form.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"title":"Remote"}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), source.MustFromURL(srv.URL+"/missing")); err == nil {
		t.Fatalf("expected non-2xx to fail")
	}
}

func TestLoadHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(source.LoaderOptions{}).Load(ctx, source.FromFile("form.json")); err == nil {
		t.Fatalf("expected cancelled context to fail")
	}
	if _, err := New(source.LoaderOptions{}).Load(context.Background(), nil); err == nil {
		t.Fatalf("expected nil source to fail")
	}
}
