package pagination_test

import (
	"encoding/json"
	"testing"

	"playground-api/internal/common/pagination"
)

func TestResponseJSONShape(t *testing.T) {
	t.Parallel()

	type item struct {
		ID int `json:"id"`
	}

	t.Run("full envelope", func(t *testing.T) {
		meta := pagination.ComputeMeta(1, 5, 12)
		links := pagination.Links{
			Self: "http://localhost:8080/user?page=1&size=5",
			Next: "http://localhost:8080/user?page=2&size=5",
		}
		resp := pagination.NewResponse([]item{{ID: 1}, {ID: 2}}, &pagination.Meta{
			Pagination: &meta,
			Links:      &links,
		})

		raw, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("marshal err=%v", err)
		}

		var decoded map[string]json.RawMessage
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal err=%v", err)
		}
		if _, ok := decoded["data"]; !ok {
			t.Error("data field missing")
		}
		metaRaw, ok := decoded["_metadata"]
		if !ok {
			t.Fatal("_metadata field missing")
		}

		var metaMap map[string]map[string]any
		if err := json.Unmarshal(metaRaw, &metaMap); err != nil {
			t.Fatalf("unmarshal _metadata err=%v", err)
		}
		p := metaMap["pagination"]
		if p["total_records"].(float64) != 12 || p["total_pages"].(float64) != 3 {
			t.Errorf("unexpected pagination metadata: %+v", p)
		}
		l := metaMap["links"]
		if _, ok := l["prev"]; ok {
			t.Error("prev link present on first page")
		}
	})

	t.Run("empty result omits metadata", func(t *testing.T) {
		resp := pagination.NewResponse[item](nil, nil)

		raw, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("marshal err=%v", err)
		}
		want := `{"data":[]}`
		if string(raw) != want {
			t.Errorf("marshal = %s, want %s", raw, want)
		}
	})
}
