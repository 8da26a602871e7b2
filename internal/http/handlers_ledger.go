package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cashflowin/internal/core"
	"cashflowin/internal/report"
)

func snapshotKey(p core.Period) string {
	return fmt.Sprintf("%d-%d", p.Year, int(p.Month))
}

// getSnapshot computes the monthly snapshot, serving from cache when fresh.
func (s *Server) getSnapshot(ctx context.Context, p core.Period) (core.LedgerSnapshot, error) {
	key := snapshotKey(p)

	if snap, found := s.snapshotCache.Get(key); found {
		s.metrics.CacheHits.Add(1)
		slog.DebugContext(ctx, "Snapshot cache hit", "year", p.Year, "month", int(p.Month))
		return snap, nil
	}
	s.metrics.CacheMisses.Add(1)

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	entries, err := s.entries.ListAll(cctx)
	if err != nil {
		return core.LedgerSnapshot{}, fmt.Errorf("list entries (year=%d, month=%d): %w", p.Year, int(p.Month), err)
	}

	snap := core.ComputeSnapshot(entries, p)
	s.snapshotCache.Set(key, snap)
	slog.DebugContext(ctx, "Snapshot cached",
		"year", p.Year,
		"month", int(p.Month),
		"entries", len(snap.PeriodEntries),
		"closing", int64(snap.ClosingBalance))
	return snap, nil
}

// handleLedgerPartial renders the monthly ledger table partial.
func (s *Server) handleLedgerPartial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	p := parsePeriod(r.URL.Query(), time.Now())
	snap, err := s.getSnapshot(r.Context(), p)
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger snapshot error", "error", err, "year", p.Year, "month", int(p.Month))
		_, _ = w.Write([]byte(`<section id="ledger" class="ledger"><div class="placeholder">Gagal memuat laporan</div></section>`))
		return
	}

	doc := report.Build(snap, s.locale)
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="ledger" class="ledger"><div class="placeholder">` + doc.Closing.Label + `: ` + doc.Closing.Amount + `</div></section>`))
		return
	}

	data := struct {
		Year  int
		Month int
		Doc   report.Document
	}{Year: p.Year, Month: int(p.Month), Doc: doc}

	if err := s.templates.ExecuteTemplate(w, "ledger.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "ledger.html", "year", p.Year, "month", int(p.Month))
		_, _ = w.Write([]byte(`<section id="ledger" class="ledger"><div class="placeholder">Gagal menampilkan laporan</div></section>`))
	}
}

// handleReport serves the monthly report as a Word-compatible download.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	p := parsePeriod(r.URL.Query(), time.Now())
	snap, err := s.getSnapshot(r.Context(), p)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report snapshot error", "error", err, "year", p.Year, "month", int(p.Month))
		http.Error(w, "Gagal membuat laporan", http.StatusInternalServerError)
		return
	}

	doc := report.Build(snap, s.locale)

	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	filename := report.Filename(p, "doc")
	w.Header().Set("Content-Type", "application/msword")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := s.templates.ExecuteTemplate(w, "report.html", doc); err != nil {
		slog.ErrorContext(r.Context(), "Report template execution failed", "error", err, "template", "report.html")
		return
	}

	s.metrics.ReportsServed.Add(1)
	slog.InfoContext(r.Context(), "Report served",
		"year", p.Year,
		"month", int(p.Month),
		"filename", filename,
		"rows", len(doc.Rows))
}
