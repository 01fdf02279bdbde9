package timezones

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type optionJSON struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type searchResponse struct {
	Data []optionJSON `json:"data"`
}

// Handler answers GET and HEAD with {"data": [{"value", "label"}]} for the
// zones matching the search parameter.
func Handler(opts ...Option) http.Handler {
	o := NewOptions(opts...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		zones := o.Zones
		if zones == nil {
			loaded, err := DefaultZones()
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			zones = loaded
		}

		query := r.URL.Query()
		limit, _ := strconv.Atoi(query.Get(o.LimitParam))
		resp := searchResponse{Data: []optionJSON{}}
		for _, zone := range Search(zones, query.Get(o.SearchParam), limit, o) {
			resp.Data = append(resp.Data, optionJSON{Value: zone, Label: City(zone)})
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
}
