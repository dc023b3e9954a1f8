package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ecazzaniga/fnolwatch/internal/domain"
	"github.com/ecazzaniga/fnolwatch/internal/fnols"
	apperrors "github.com/ecazzaniga/fnolwatch/internal/shared/errors"
	"github.com/ecazzaniga/fnolwatch/internal/web/templates"
)

func (s *Server) handleIngestForm(w http.ResponseWriter, r *http.Request) {
	data := templates.IngestFormData{
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := templates.IngestPage(data).Render(r.Context(), w); err != nil {
		apperrors.HandleError(w, err)
	}
}

func (s *Server) handleIngestSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	data := templates.IngestFormData{
		Subject:     r.FormValue("subject"),
		Body:        r.FormValue("body"),
		Sender:      r.FormValue("sender"),
		Attachments: r.FormValue("attachments"),
		ReceivedAt:  r.FormValue("received_at"),
	}
	if data.ReceivedAt == "" {
		data.ReceivedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if data.Subject == "" || data.Sender == "" {
		data.Error = "subject and sender are required"
		renderIngest(w, r, data)
		return
	}

	payload := domain.IngestPayload{
		Subject:     data.Subject,
		Body:        data.Body,
		Attachments: splitAttachments(data.Attachments),
		Sender:      data.Sender,
		ReceivedAt:  data.ReceivedAt,
	}

	ack, err := s.client.SubmitIngest(r.Context(), payload)
	if err != nil {
		// The submission is a pass-through write; on failure keep the
		// user's input so they can retry without retyping.
		data.Error = "submission failed: " + err.Error()
		renderIngest(w, r, data)
		return
	}

	// A new case invalidates every cached list page. The next list read
	// refetches and picks up the freshly ingested FNOL.
	s.cache.InvalidateOp(fnols.OpList)

	data = templates.IngestFormData{
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
		Ack:        prettyJSON(ack),
	}
	renderIngest(w, r, data)
}

func renderIngest(w http.ResponseWriter, r *http.Request, data templates.IngestFormData) {
	if err := templates.IngestPage(data).Render(r.Context(), w); err != nil {
		apperrors.HandleError(w, err)
	}
}

// splitAttachments parses a comma-separated attachment list, dropping empty
// entries so "a.pdf, ,b.jpg" yields two names.
func splitAttachments(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
