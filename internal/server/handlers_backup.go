package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bordenet/pr-faq-assistant/internal/backup"
)

// backupBodyLimit bounds an uploaded backup
const backupBodyLimit = 64 << 20

// ImportResponse is returned by POST /backup
type ImportResponse = backup.RestoreResult

func (s *Server) handleExportBackup(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	snapshot := backup.Export(projects, s.now())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
		fmt.Sprintf("prfaq-backup-%s.json", snapshot.ExportDate.Format("2006-01-02"))))
	s.jsonResponse(w, http.StatusOK, snapshot)
}

func (s *Server) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, backupBodyLimit))
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.writeError(w, &ErrPayloadTooLarge{Limit: maxBytes.Limit})
			return
		}
		s.writeError(w, &ErrValidation{Field: "body", Message: "failed to read request body"})
		return
	}

	projects, err := backup.Import(data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp, err := backup.Restore(r.Context(), s.store, projects)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info().Int("created", resp.Created).Int("updated", resp.Updated).Msg("backup imported")
	s.jsonResponse(w, http.StatusOK, resp)
}
