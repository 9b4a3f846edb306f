package server

import (
	"net/http"

	"github.com/bordenet/pr-faq-assistant/internal/ingestion"
	"github.com/bordenet/pr-faq-assistant/internal/validator"
)

// checkDocumentSize rejects documents over the configured limit
func (s *Server) checkDocumentSize(doc string) error {
	if int64(len(doc)) > s.maxBytes {
		return &ErrPayloadTooLarge{Size: int64(len(doc)), Limit: s.maxBytes}
	}
	return nil
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeJSON(w, r, 2*s.maxBytes+bodyOverhead, s.validate, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkDocumentSize(req.Markdown); err != nil {
		s.writeError(w, err)
		return
	}

	markdown := req.Markdown
	if req.Format == ingestion.FormatHTML {
		converted, _, err := ingestion.Normalize(markdown, req.Format)
		if err != nil {
			s.writeError(w, err)
			return
		}
		markdown = converted
	}

	result := validator.ValidatePRFAQ(markdown)
	s.logger.Debug().Int("score", result.TotalScore).Bool("penalty", result.PenaltyApplied).Msg("validated document")
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchValidateRequest
	limit := MaxBatchDocuments*(2*s.maxBytes) + bodyOverhead
	if err := decodeJSON(w, r, limit, s.validate, &req); err != nil {
		s.writeError(w, err)
		return
	}
	for _, doc := range req.Documents {
		if err := s.checkDocumentSize(doc); err != nil {
			s.writeError(w, err)
			return
		}
	}

	results, err := validator.ValidateBatch(r.Context(), req.Documents, s.batchWorkers)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, BatchValidateResponse{Results: results})
}
