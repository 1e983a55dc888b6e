package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeSheetsAPI serves the values endpoints for a single tab. Like the real
// service, USER_ENTERED input turns numeric text into numbers, ISO dates into
// day serials and "=" text into formula results.
type fakeSheetsAPI struct {
	mu         sync.Mutex
	rows       [][]interface{}
	inputModes []string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, rng, _ := strings.Cut(r.URL.Path, "/values/")
	switch {
	case r.Method == http.MethodGet:
		parsed, err := ParseRange(rng)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var out [][]interface{}
		if parsed.StartRow-1 < len(f.rows) {
			out = f.rows[parsed.StartRow-1:]
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"range": rng, "values": out})
		return
	case r.Method == http.MethodPost && strings.HasSuffix(rng, ":append"),
		r.Method == http.MethodPut:
	default:
		http.Error(w, "unexpected call", http.StatusNotFound)
		return
	}

	mode := r.URL.Query().Get("valueInputOption")
	f.inputModes = append(f.inputModes, mode)

	var body struct {
		Values [][]interface{} `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, row := range body.Values {
		stored := make([]interface{}, len(row))
		for i, v := range row {
			stored[i] = v
			if mode == "USER_ENTERED" {
				stored[i] = userEntered(v)
			}
		}
		if r.Method == http.MethodPut {
			parsed, err := ParseRange(rng)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			for len(f.rows) < parsed.StartRow {
				f.rows = append(f.rows, nil)
			}
			f.rows[parsed.StartRow-1] = stored
			continue
		}
		f.rows = append(f.rows, stored)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{})
}

func userEntered(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if strings.HasPrefix(s, "=") {
		return float64(2)
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return float64(t.Unix())/86400 + 25569
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func newFakeClient(t *testing.T) (*GoogleClient, *fakeSheetsAPI) {
	t.Helper()
	api := &fakeSheetsAPI{rows: [][]interface{}{{"id", "phone", "firstPurchase", "note"}}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := NewGoogleClient(context.Background(), Options{
		SpreadsheetID: "sheet-1",
		ClientOptions: []option.ClientOption{
			option.WithEndpoint(srv.URL + "/"),
			option.WithoutAuthentication(),
		},
	})
	require.NoError(t, err)
	return client, api
}

func TestGoogleClientWritesTextVerbatim(t *testing.T) {
	client, api := newFakeClient(t)
	ctx := context.Background()

	row := []interface{}{"c-1", "01711000000", "2024-05-01", "=1+1"}
	require.NoError(t, client.Append(ctx, AppendRange("Customers", 4), [][]interface{}{row}))

	rows, err := client.Get(ctx, TableRange("Customers", 4, 2))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row, rows[0])

	updated := []interface{}{"c-1", "01999000000", "2024-06-01", "=SUM(A1)"}
	require.NoError(t, client.Update(ctx, RowRange("Customers", 2, 4), [][]interface{}{updated}))

	rows, err = client.Get(ctx, TableRange("Customers", 4, 2))
	require.NoError(t, err)
	assert.Equal(t, updated, rows[0])

	assert.Equal(t, []string{"RAW", "RAW"}, api.inputModes)
}

func TestGoogleClientRequiresSpreadsheetID(t *testing.T) {
	_, err := NewGoogleClient(context.Background(), Options{})
	assert.Error(t, err)
}
