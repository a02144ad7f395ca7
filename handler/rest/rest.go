package rest

import (
	"errors"
	"net/http"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(oracleSrv core.OracleService, registrySrv core.RegistryService) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Post("/price-requests", requestPriceHandler(oracleSrv))
	router.Get("/price-requests/pending", pendingRequestsHandler(oracleSrv))
	router.Post("/answers", submitAnswerHandler(oracleSrv))
	router.Get("/prices", priceHandler(oracleSrv))
	router.Get("/whitelist/{address}", isWhitelistedHandler(registrySrv))
	router.Post("/whitelist", addWhitelistHandler(registrySrv))
	router.Delete("/whitelist/{address}", removeWhitelistHandler(registrySrv))
	router.Post("/owner/transfer", transferOwnershipHandler(registrySrv))
	router.Post("/signer/rotate", rotateSignerHandler(registrySrv))

	return router
}

func renderErr(w http.ResponseWriter, err error) {
	code, ok := err.(core.ErrorCode)
	if !ok {
		render.BadRequest(w, err)
		return
	}

	switch code {
	case core.ErrUnauthorized, core.ErrNotWhitelisted:
		render.Error(w, http.StatusForbidden, int(code), err)
	case core.ErrDuplicateRequest, core.ErrAlreadyCommitted, core.ErrAlreadyWhitelisted:
		render.Error(w, http.StatusConflict, int(code), err)
	case core.ErrNoSuchRequest, core.ErrIdentityNotFound, core.ErrPriceNotFound:
		render.Error(w, http.StatusNotFound, int(code), err)
	default:
		render.Error(w, http.StatusBadRequest, int(code), err)
	}
}
