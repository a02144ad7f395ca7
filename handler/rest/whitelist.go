package rest

import (
	"encoding/json"
	"net/http"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/handler/render"

	"github.com/go-chi/chi"
)

func isWhitelistedHandler(registrySrv core.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		address := chi.URLParam(r, "address")
		ok, err := registrySrv.IsWhitelisted(ctx, address)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"address": address, "whitelisted": ok})
	}
}

func addWhitelistHandler(registrySrv core.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Actor   string `json:"actor"`
			Address string `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := registrySrv.AddIdentity(ctx, body.Actor, body.Address); err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"address": body.Address, "whitelisted": true})
	}
}

func removeWhitelistHandler(registrySrv core.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		address := chi.URLParam(r, "address")
		actor := r.URL.Query().Get("actor")

		if err := registrySrv.RemoveIdentity(ctx, actor, address); err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"address": address, "whitelisted": false})
	}
}

func transferOwnershipHandler(registrySrv core.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Actor    string `json:"actor"`
			NewOwner string `json:"new_owner"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := registrySrv.TransferOwnership(ctx, body.Actor, body.NewOwner); err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"owner": body.NewOwner})
	}
}

func rotateSignerHandler(registrySrv core.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Actor     string `json:"actor"`
			NewSigner string `json:"new_signer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := registrySrv.RotateSigner(ctx, body.Actor, body.NewSigner); err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"signer": body.NewSigner})
	}
}
