package event

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

type historyParams struct {
	Minutes   int
	Limit     int
	TimeoutMS int
	Kind      string
}

func parseHistory(r *http.Request, defMin, defLim, defTOms int) historyParams {
	q := r.URL.Query()
	get := func(k string, def, min, max int) int {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				if n < min {
					return min
				}
				if max > 0 && n > max {
					return max
				}
				return n
			}
		}
		return def
	}
	p := historyParams{
		Minutes:   get("minutes", defMin, 1, 7*24*60),
		Limit:     get("limit", defLim, 1, 500),
		TimeoutMS: get("timeout_ms", defTOms, 200, 5000),
	}
	if k := strings.TrimSpace(q.Get("kind")); isAlertKind(k) {
		p.Kind = k
	}
	return p
}

func buildFlux(bucket string, p historyParams) string {
	kindFilter := ""
	if p.Kind != "" {
		kindFilter = fmt.Sprintf("\n  |> filter(fn: (r) => r.kind == %q)", p.Kind)
	}
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == %q)%s
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> keep(columns: ["_time", "kind", "temperature", "threshold"])
  |> group()
  |> sort(columns: ["_time"], desc: true)
  |> limit(n: %d)
`, bucket, p.Minutes, alertMeasurement, kindFilter, p.Limit)
}

func toFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f
		}
	}
	return 0
}

// NewAlertHistoryHandler serves GET /alerts/latest?limit=20&minutes=1440[&kind=...].
// Query failures answer an empty list with an X-Error header.
func NewAlertHistoryHandler(q api.QueryAPI, bucket string, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		p := parseHistory(r, 1440, 20, 2000)

		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(p.TimeoutMS)*time.Millisecond)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		res, err := q.Query(ctx, buildFlux(bucket, p))
		if err != nil {
			logger.Warnf("alert history query: %v", err)
			w.Header().Set("X-Error", "influx-query-error")
			_, _ = w.Write([]byte("[]"))
			return
		}
		defer func() {
			if cerr := res.Close(); cerr != nil {
				logger.Debugf("close query result: %v", cerr)
			}
		}()

		out := make([]AlertRecord, 0, p.Limit)
		for res.Next() {
			rec := res.Record()
			kind, _ := rec.ValueByKey("kind").(string)
			out = append(out, AlertRecord{
				Kind:        model.AlertKind(kind),
				Temperature: toFloat(rec.ValueByKey("temperature")),
				Threshold:   toFloat(rec.ValueByKey("threshold")),
				Time:        rec.Time().UTC(),
			})
		}
		if res.Err() != nil {
			w.Header().Set("X-Error", "influx-iter-error")
		}
		_ = json.NewEncoder(w).Encode(out)
	})
}
