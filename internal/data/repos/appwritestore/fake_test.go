package appwritestore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/yungbote/fundocs-backend/internal/platform/appwrite"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// fakeAppwrite serves the subset of the Appwrite REST API the stores use,
// backed by in-memory maps.
type fakeAppwrite struct {
	mu      sync.Mutex
	nextID  int
	colls   map[string]map[string]map[string]any
	order   map[string][]string
	users   map[string]map[string]any
	files   map[string]bool
	deletes []string
}

func newFakeAppwrite() *fakeAppwrite {
	return &fakeAppwrite{
		colls: map[string]map[string]map[string]any{},
		order: map[string][]string{},
		users: map[string]map[string]any{},
		files: map[string]bool{},
	}
}

func (f *fakeAppwrite) client(t *testing.T) *appwrite.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := appwrite.NewClient(logger.Nop(), appwrite.Config{Endpoint: srv.URL, ProjectID: "p", APIKey: "k"})
	if err != nil {
		t.Fatalf("appwrite.NewClient: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found", "type": "document_not_found"})
}

func (f *fakeAppwrite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) >= 5 && parts[0] == "databases" && parts[4] == "documents":
		key := parts[1] + "/" + parts[3]
		if f.colls[key] == nil {
			f.colls[key] = map[string]map[string]any{}
		}
		id := ""
		if len(parts) == 6 {
			id = parts[5]
		}
		f.serveDocuments(w, r, key, id)
	case len(parts) == 2 && parts[0] == "users":
		u, ok := f.users[parts[1]]
		if !ok {
			notFound(w)
			return
		}
		if r.Method == http.MethodDelete {
			delete(f.users, parts[1])
			f.deletes = append(f.deletes, "user:"+parts[1])
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, u)
	case len(parts) == 5 && parts[0] == "storage" && parts[3] == "files":
		fileKey := parts[2] + "/" + parts[4]
		if !f.files[fileKey] {
			notFound(w)
			return
		}
		delete(f.files, fileKey)
		f.deletes = append(f.deletes, "file:"+fileKey)
		w.WriteHeader(http.StatusNoContent)
	default:
		notFound(w)
	}
}

func (f *fakeAppwrite) serveDocuments(w http.ResponseWriter, r *http.Request, key, id string) {
	docs := f.colls[key]
	switch {
	case r.Method == http.MethodPost:
		var body struct {
			DocumentID string         `json:"documentId"`
			Data       map[string]any `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		docID := body.DocumentID
		if docID == appwrite.UniqueID {
			f.nextID++
			docID = fmt.Sprintf("gen-%d", f.nextID)
		}
		if _, exists := docs[docID]; exists {
			writeJSON(w, http.StatusConflict, map[string]any{"message": "exists", "type": "document_already_exists"})
			return
		}
		doc := map[string]any{"$id": docID, "$createdAt": "2026-01-02T03:04:05.000+00:00"}
		for k, v := range body.Data {
			doc[k] = v
		}
		docs[docID] = doc
		f.order[key] = append(f.order[key], docID)
		writeJSON(w, http.StatusCreated, doc)
	case r.Method == http.MethodGet && id == "":
		f.listDocuments(w, r, key)
	case r.Method == http.MethodGet:
		doc, ok := docs[id]
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case r.Method == http.MethodPatch:
		doc, ok := docs[id]
		if !ok {
			notFound(w)
			return
		}
		var body struct {
			Data map[string]any `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for k, v := range body.Data {
			doc[k] = v
		}
		writeJSON(w, http.StatusOK, doc)
	case r.Method == http.MethodDelete:
		if _, ok := docs[id]; !ok {
			notFound(w)
			return
		}
		delete(docs, id)
		f.deletes = append(f.deletes, "doc:"+id)
		w.WriteHeader(http.StatusNoContent)
	default:
		notFound(w)
	}
}

func (f *fakeAppwrite) listDocuments(w http.ResponseWriter, r *http.Request, key string) {
	limit, offset := 25, 0
	var filters []struct {
		Method    string `json:"method"`
		Attribute string `json:"attribute"`
		Values    []any  `json:"values"`
	}
	var raws []string
	for k, vals := range r.URL.Query() {
		if strings.HasPrefix(k, "queries") {
			raws = append(raws, vals...)
		}
	}
	for _, raw := range raws {
		var q struct {
			Method    string `json:"method"`
			Attribute string `json:"attribute"`
			Values    []any  `json:"values"`
		}
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad query"})
			return
		}
		switch q.Method {
		case "limit":
			limit, _ = strconv.Atoi(fmt.Sprint(q.Values[0]))
		case "offset":
			offset, _ = strconv.Atoi(fmt.Sprint(q.Values[0]))
		default:
			filters = append(filters, q)
		}
	}
	matched := []map[string]any{}
	for _, id := range f.order[key] {
		doc, ok := f.colls[key][id]
		if !ok {
			continue
		}
		keep := true
		for _, q := range filters {
			if q.Method == "equal" && fmt.Sprint(doc[q.Attribute]) != fmt.Sprint(q.Values[0]) {
				keep = false
			}
		}
		if keep {
			matched = append(matched, doc)
		}
	}
	page := []map[string]any{}
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		page = append(page, matched[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(matched), "documents": page})
}
