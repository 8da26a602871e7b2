package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"cashflowin/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	userName := ""
	if id, ok := identityFrom(r.Context()); ok {
		userName = id.Name
	}

	balance := ""
	if all, err := s.entries.ListAll(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "List entries error", "error", err)
		balance = "Gagal memuat saldo"
	} else {
		balance = s.locale.FormatMoney(core.TotalBalance(all))
	}

	type monthOption struct {
		Num  int
		Name string
	}
	months := make([]monthOption, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, monthOption{Num: m, Name: s.locale.Months[m]})
	}

	data := struct {
		User    string
		Balance string
		Year    int
		Month   int
		Months  []monthOption
	}{
		User:    userName,
		Balance: balance,
		Year:    now.Year(),
		Month:   int(now.Month()),
		Months:  months,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		BadRequestError("Permintaan tidak valid").Write(w)
		return
	}

	in := core.EntryInput{
		IncomeNote:  sanitizeInput(r.Form.Get("ket_pemasukan")),
		ExpenseNote: sanitizeInput(r.Form.Get("ket_pengeluaran")),
	}

	if v := sanitizeInput(r.Form.Get("tanggal")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			UnprocessableEntityError("Tanggal tidak valid").Write(w)
			return
		}
		in.Date = d
	}

	income, err := core.ParseMoney(sanitizeInput(r.Form.Get("pemasukan")))
	if err != nil {
		if errors.Is(err, core.ErrAmountExceedsLimit) {
			UnprocessableEntityError("Nominal tidak boleh lebih dari Rp 20.000.000").Write(w)
		} else {
			UnprocessableEntityError("Pemasukan tidak valid").Write(w)
		}
		return
	}
	in.Income = income

	expense, err := core.ParseMoney(sanitizeInput(r.Form.Get("pengeluaran")))
	if err != nil {
		if errors.Is(err, core.ErrAmountExceedsLimit) {
			UnprocessableEntityError("Nominal tidak boleh lebih dari Rp 20.000.000").Write(w)
		} else {
			UnprocessableEntityError("Pengeluaran tidak valid").Write(w)
		}
		return
	}
	in.Expense = expense

	entry, err := core.ValidateEntry(in, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, core.ErrAmountExceedsLimit):
			UnprocessableEntityError("Nominal tidak boleh lebih dari Rp 20.000.000").Write(w)
		default:
			UnprocessableEntityError("Data tidak valid").Write(w)
		}
		return
	}

	id, err := s.entries.Insert(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Entry insert error", "error", err, "net", int64(entry.Net))
		InternalServerError("Gagal menyimpan transaksi").Write(w)
		return
	}

	// Every cached snapshot at or after the entry month is now stale
	s.snapshotCache.Purge()
	s.metrics.EntriesCreated.Add(1)

	s.slogger.LogEntryCreated(r.Context(), id, int64(entry.Income), int64(entry.Expense), int64(entry.Net))

	year := entry.Date.Year()
	month := int(entry.Date.Month())
	NewHTMXResponse().
		TriggerEntryCreated(year, month).
		TriggerLedgerRefresh(year, month).
		TriggerFormReset().
		BodyHTML(`<div class="success">Transaksi berhasil ditambahkan (` +
			template.HTMLEscapeString(s.locale.FormatMoney(entry.Net)) + `)</div>`).
		Write(w)
}
