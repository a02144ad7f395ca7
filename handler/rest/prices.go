package rest

import (
	"errors"
	"net/http"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/handler/render"

	"github.com/spf13/cast"
)

// priceHandler serves consumers: an exact (pair, timestamp) lookup, or
// the latest committed record when no timestamp is given.
func priceHandler(oracleSrv core.OracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pair := r.URL.Query().Get("pair")
		if pair == "" {
			render.BadRequest(w, errors.New("missing pair"))
			return
		}

		var (
			record *core.ValidationRecord
			err    error
		)
		if ts := r.URL.Query().Get("timestamp"); ts != "" {
			record, err = oracleSrv.GetValidatedPrice(ctx, pair, cast.ToInt64(ts))
		} else {
			record, err = oracleSrv.GetLatestPrice(ctx, pair)
		}
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"data": record})
	}
}
