package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartbiz-backend/internal/services"
	"smartbiz-backend/pkg/utils"
)

type BackupHandler struct {
	Service *services.BackupService
}

func NewBackupHandler(s *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: s}
}

func (h *BackupHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, backups)
}

func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.Service.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, backup)
}

func (h *BackupHandler) GetBackup(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Get(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, snap)
}
