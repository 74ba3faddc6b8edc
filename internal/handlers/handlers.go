package handlers

import (
	"errors"
	"net/http"

	"zenweb/internal/store"
	"zenweb/internal/utils"
)

// storeError maps store failures onto the API envelope.
func storeError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrEmailTaken):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrLocationInUse):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.As(err, &ve):
		utils.Error(w, http.StatusBadRequest, ve.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
