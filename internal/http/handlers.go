package http

import (
	"fmt"
	"net/http"

	"salesdash/internal/core"
	"salesdash/internal/services"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

type listResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Total        int                `json:"total"`
	Page         int                `json:"page"`
	PerPage      int                `json:"perPage"`
	TotalPages   int                `json:"totalPages"`
}

type statisticsResponse struct {
	TotalSaleAmount   float64 `json:"totalSaleAmount"`
	TotalSoldItems    int     `json:"totalSoldItems"`
	TotalNotSoldItems int     `json:"totalNotSoldItems"`
}

type combinedResponse struct {
	Transactions listResponse       `json:"transactions"`
	Statistics   statisticsResponse `json:"statistics"`
	BarChart     map[string]int     `json:"barChart"`
	PieChart     map[string]int     `json:"pieChart"`
}

func toListResponse(p services.TransactionPage) listResponse {
	txs := p.Transactions
	if txs == nil {
		txs = []core.Transaction{}
	}
	return listResponse{
		Transactions: txs,
		Total:        p.Total,
		Page:         p.Page,
		PerPage:      p.PerPage,
		TotalPages:   p.TotalPages,
	}
}

func toStatisticsResponse(s core.Statistics) statisticsResponse {
	return statisticsResponse{
		TotalSaleAmount:   s.TotalSaleAmount,
		TotalSoldItems:    s.SoldCount,
		TotalNotSoldItems: s.UnsoldCount,
	}
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	count, err := s.seeder.Reseed(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("database initialized with %d transactions", count))
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	month, err := parseMonth(query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := parsePositiveInt(query, "page", defaultPage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	perPage, err := parsePositiveInt(query, "perPage", defaultPerPage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.dashboard.ListTransactions(r.Context(), month, query.Get("search"), page, perPage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(p))
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	month, err := parseMonth(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := s.dashboard.Statistics(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatisticsResponse(stats))
}

func (s *Server) handleBarChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	month, err := parseMonth(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	hist, err := s.dashboard.PriceHistogram(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, hist)
}

func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	month, err := parseMonth(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	counts, err := s.dashboard.CategoryBreakdown(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleCombined(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	month, err := parseMonth(query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := parsePositiveInt(query, "page", defaultPage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	perPage, err := parsePositiveInt(query, "perPage", defaultPerPage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := s.dashboard.Combined(r.Context(), month, query.Get("search"), page, perPage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, combinedResponse{
		Transactions: toListResponse(view.Transactions),
		Statistics:   toStatisticsResponse(view.Statistics),
		BarChart:     view.BarChart,
		PieChart:     view.PieChart,
	})
}
