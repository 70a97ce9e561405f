package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/evcraddock/immo-abidjan/internal/db"
	"github.com/evcraddock/immo-abidjan/internal/listing"
	"github.com/evcraddock/immo-abidjan/internal/refresh"
	"github.com/evcraddock/immo-abidjan/internal/synth"
)

type testEnv struct {
	srv  *Server
	repo *listing.Repository
	gate *refresh.Gate
}

// testAPIServer creates a server over a fresh SQLite database. The store
// is initialized lazily by the first request, as in production.
func testAPIServer(t *testing.T, fallback bool) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})

	repo := listing.NewRepository(d, db.SQLite)
	gate := refresh.NewGate(repo.Init)
	svc := listing.NewService(repo, listing.ServiceOptions{
		TodayFallback: fallback,
		Neighborhoods: synth.Neighborhoods(),
	})
	orch := refresh.New(gate, synth.NewDemo(), repo, refresh.Schedule{})

	return &testEnv{srv: NewServer(svc, gate, orch), repo: repo, gate: gate}
}

func (e *testEnv) insert(t *testing.T, l listing.Listing) {
	t.Helper()
	if _, err := e.gate.EnsureReady(context.Background()); err != nil {
		t.Fatalf("ensure ready: %v", err)
	}
	if _, err := e.repo.Upsert(context.Background(), l); err != nil {
		t.Fatalf("upsert: %v", err)
	}
}

func apiRequest(t *testing.T, srv http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func testListing(id int64, neighborhood string, tt listing.TransactionType, date listing.Date) listing.Listing {
	return listing.Listing{
		ID:              id,
		Title:           "Villa 4 chambres avec jardin - " + neighborhood,
		Price:           "250000000",
		TransactionType: tt,
		Neighborhood:    neighborhood,
		SurfaceArea:     "200 m²",
		BedroomCount:    4,
		PublicationDate: date,
		Source:          "Tonkro.ci",
	}
}

func TestAPIListListings(t *testing.T) {
	env := testAPIServer(t, true)
	today := listing.Today()
	env.insert(t, testListing(1, "Cocody", listing.Sale, today))
	env.insert(t, testListing(2, "Cocody", listing.Rental, today))
	env.insert(t, testListing(3, "Yopougon", listing.Sale, today))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 3},
		{"neighborhood", "?neighborhood=cocody", 2},
		{"type", "?type=rental", 1},
		{"both", "?neighborhood=COCODY&type=sale", 1},
		{"no match", "?neighborhood=anyama", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, env.srv, http.MethodGet, "/api/listings"+tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}

			var resp ListingsResponse
			decode(t, w, &resp)
			if resp.Total != tt.want || len(resp.Listings) != tt.want {
				t.Errorf("total = %d (%d listings), want %d", resp.Total, len(resp.Listings), tt.want)
			}
			if resp.Date == "" {
				t.Error("expected date")
			}
			for _, l := range resp.Listings {
				if l.Image != listing.PlaceholderImage {
					t.Errorf("listing %d image = %q, want placeholder", l.ID, l.Image)
				}
			}
		})
	}
}

func TestAPIListListingsEmptyIsArray(t *testing.T) {
	env := testAPIServer(t, true)

	w := apiRequest(t, env.srv, http.MethodGet, "/api/listings")
	var raw map[string]json.RawMessage
	decode(t, w, &raw)
	if string(raw["listings"]) != "[]" {
		t.Errorf("listings = %s, want []", raw["listings"])
	}
}

func TestAPIListToday(t *testing.T) {
	now := time.Now()
	yesterday := listing.DateOf(now.AddDate(0, 0, -1))

	t.Run("only today", func(t *testing.T) {
		env := testAPIServer(t, true)
		env.insert(t, testListing(1, "Plateau", listing.Sale, listing.DateOf(now)))
		env.insert(t, testListing(2, "Plateau", listing.Sale, yesterday))

		w := apiRequest(t, env.srv, http.MethodGet, "/api/listings/today")
		var resp ListingsResponse
		decode(t, w, &resp)

		if resp.Total != 1 || resp.Listings[0].ID != 1 {
			t.Errorf("got %+v, want only listing 1", resp.Listings)
		}
		if resp.City != "Abidjan" {
			t.Errorf("city = %q", resp.City)
		}
		if resp.Date != string(listing.DateOf(now)) {
			t.Errorf("date = %q", resp.Date)
		}
	})

	t.Run("fallback to all", func(t *testing.T) {
		env := testAPIServer(t, true)
		env.insert(t, testListing(1, "Plateau", listing.Sale, yesterday))
		env.insert(t, testListing(2, "Marcory", listing.Rental, yesterday))

		w := apiRequest(t, env.srv, http.MethodGet, "/api/listings/today?neighborhood=plateau")
		var resp ListingsResponse
		decode(t, w, &resp)
		if resp.Total != 2 {
			t.Errorf("total = %d, want 2 (unfiltered fallback)", resp.Total)
		}
	})

	t.Run("filter misses today's rows", func(t *testing.T) {
		env := testAPIServer(t, true)
		env.insert(t, testListing(1, "Cocody", listing.Sale, listing.DateOf(now)))
		env.insert(t, testListing(2, "Yopougon", listing.Sale, yesterday))

		w := apiRequest(t, env.srv, http.MethodGet, "/api/listings/today?neighborhood=plateau")
		var resp ListingsResponse
		decode(t, w, &resp)
		if resp.Total != 0 {
			t.Errorf("total = %d, want 0 (today has rows, none in Plateau)", resp.Total)
		}
	})

	t.Run("fallback disabled", func(t *testing.T) {
		env := testAPIServer(t, false)
		env.insert(t, testListing(1, "Plateau", listing.Sale, yesterday))

		w := apiRequest(t, env.srv, http.MethodGet, "/api/listings/today")
		var resp ListingsResponse
		decode(t, w, &resp)
		if resp.Total != 0 {
			t.Errorf("total = %d, want 0", resp.Total)
		}
	})
}

func TestAPIGetListing(t *testing.T) {
	env := testAPIServer(t, true)
	l := testListing(42, "Rivera", listing.Sale, listing.Today())
	l.Image = "https://images.example/rivera.jpg"
	env.insert(t, l)

	tests := []struct {
		name   string
		path   string
		status int
		errMsg string
	}{
		{"found", "/api/listings/42", http.StatusOK, ""},
		{"not found", "/api/listings/9999", http.StatusNotFound, "listing not found"},
		{"bad id", "/api/listings/abc", http.StatusBadRequest, "invalid listing ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, env.srv, http.MethodGet, tt.path)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}

			if tt.errMsg != "" {
				var resp map[string]string
				decode(t, w, &resp)
				if resp["error"] != tt.errMsg {
					t.Errorf("error = %q, want %q", resp["error"], tt.errMsg)
				}
				return
			}

			var got listing.Listing
			decode(t, w, &got)
			if got.ID != 42 || got.Neighborhood != "Rivera" {
				t.Errorf("got %+v", got)
			}
			if got.Image != "https://images.example/rivera.jpg" {
				t.Errorf("stored image should be kept, got %q", got.Image)
			}
		})
	}
}

func TestAPINeighborhoods(t *testing.T) {
	env := testAPIServer(t, true)

	w := apiRequest(t, env.srv, http.MethodGet, "/api/neighborhoods")
	var resp NeighborhoodsResponse
	decode(t, w, &resp)

	if resp.Total != 10 || len(resp.Neighborhoods) != 10 {
		t.Fatalf("total = %d, want 10", resp.Total)
	}
	if resp.Neighborhoods[0] != "Anyama" {
		t.Errorf("first = %q, want Anyama (sorted)", resp.Neighborhoods[0])
	}
}

func TestAPIStats(t *testing.T) {
	env := testAPIServer(t, true)
	today := listing.Today()
	env.insert(t, testListing(1, "Cocody", listing.Sale, today))
	env.insert(t, testListing(2, "Plateau", listing.Rental, today))
	env.insert(t, testListing(3, "Plateau", listing.Sale, listing.DateOf(time.Now().AddDate(0, 0, -5))))

	w := apiRequest(t, env.srv, http.MethodGet, "/api/stats")
	var resp StatsResponse
	decode(t, w, &resp)

	want := listing.Stats{Total: 3, Today: 2, SaleCount: 2, RentalCount: 1, DistinctNeighborhoods: 2}
	if resp.Stats != want {
		t.Errorf("stats = %+v, want %+v", resp.Stats, want)
	}
}

func TestAPIReadsInitializeStore(t *testing.T) {
	env := testAPIServer(t, true)
	if env.gate.State() != refresh.Uninitialized {
		t.Fatalf("state = %v before first request", env.gate.State())
	}

	w := apiRequest(t, env.srv, http.MethodGet, "/api/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if env.gate.State() != refresh.Ready {
		t.Errorf("state = %v, want ready", env.gate.State())
	}
}

func TestHealth(t *testing.T) {
	env := testAPIServer(t, true)

	w := apiRequest(t, env.srv, http.MethodGet, "/health")
	var resp HealthResponse
	decode(t, w, &resp)
	if resp.Status != "ok" || resp.Store != "uninitialized" || resp.Timestamp == "" {
		t.Errorf("health = %+v", resp)
	}

	apiRequest(t, env.srv, http.MethodGet, "/api/listings")

	w = apiRequest(t, env.srv, http.MethodGet, "/health")
	decode(t, w, &resp)
	if resp.Store != "ready" {
		t.Errorf("store = %q, want ready", resp.Store)
	}
}

func TestAPIRefresh(t *testing.T) {
	env := testAPIServer(t, true)

	w := apiRequest(t, env.srv, http.MethodPost, "/api/admin/refresh")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var res refresh.Result
	decode(t, w, &res)
	if res.Produced != 6 || res.Saved != 6 {
		t.Errorf("result = %+v, want 6/6", res)
	}

	w = apiRequest(t, env.srv, http.MethodPost, "/api/admin/refresh")
	decode(t, w, &res)
	if res.Saved != 0 {
		t.Errorf("second refresh saved %d, want 0", res.Saved)
	}

	w = apiRequest(t, env.srv, http.MethodGet, "/api/admin/refresh")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", w.Code)
	}
}

type failingRefresher struct{}

func (failingRefresher) RunOnce(context.Context) (refresh.Result, error) {
	return refresh.Result{}, errors.New("no strategy produced listings")
}

func TestAPIRefreshFailure(t *testing.T) {
	env := testAPIServer(t, true)
	srv := NewServer(env.srv.listings, env.gate, failingRefresher{})

	w := apiRequest(t, srv, http.MethodPost, "/api/admin/refresh")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	env := testAPIServer(t, true)

	w := apiRequest(t, env.srv, http.MethodGet, "/api/annonces")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	env := testAPIServer(t, true)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- env.srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
