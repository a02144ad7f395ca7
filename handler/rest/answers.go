package rest

import (
	"encoding/json"
	"net/http"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/handler/render"
)

func submitAnswerHandler(oracleSrv core.OracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var answer core.SignedAnswer
		if err := json.NewDecoder(r.Body).Decode(&answer); err != nil {
			render.BadRequest(w, err)
			return
		}

		record, err := oracleSrv.SubmitAnswer(ctx, &answer)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"data": record})
	}
}
