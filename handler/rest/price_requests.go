package rest

import (
	"encoding/json"
	"net/http"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/handler/render"

	"github.com/spf13/cast"
)

func requestPriceHandler(oracleSrv core.OracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Requester string `json:"requester"`
			Pair      string `json:"pair"`
			Timestamp int64  `json:"timestamp"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.BadRequest(w, err)
			return
		}

		req, err := oracleSrv.RequestPrice(ctx, body.Requester, body.Pair, body.Timestamp)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"data": req})
	}
}

func pendingRequestsHandler(oracleSrv core.OracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := cast.ToInt(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		requests, err := oracleSrv.ListPending(ctx, limit)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"data": requests})
	}
}
