package upstream

import (
	"encoding/json"
	"strconv"

	"github.com/samber/lo"

	"github.com/you/visitorsvc/domain"
)

// rawOption accepts every casing variant the catalog endpoints use for the
// same two fields. Some endpoints also send numeric ids.
type rawOption struct {
	ID        json.RawMessage `json:"id"`
	IDUpper   json.RawMessage `json:"Id"`
	Name      string          `json:"name"`
	NameUpper string          `json:"Name"`
}

func (r rawOption) normalize() domain.Option {
	opt := domain.Option{Name: r.Name}
	if opt.Name == "" {
		opt.Name = r.NameUpper
	}
	raw := r.ID
	if len(raw) == 0 {
		raw = r.IDUpper
	}
	opt.ID = decodeID(raw)
	return opt
}

// decodeID turns a raw JSON id (string or number) into its string form.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(int64(n), 10)
	}
	return string(raw)
}

// decodeOptions parses a catalog response body into normalized options,
// dropping entries with no usable id or name.
func decodeOptions(data []byte) ([]domain.Option, error) {
	var raw []rawOption
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	opts := lo.Map(raw, func(r rawOption, _ int) domain.Option { return r.normalize() })
	return lo.Filter(opts, func(o domain.Option, _ int) bool {
		return o.ID != "" || o.Name != ""
	}), nil
}
