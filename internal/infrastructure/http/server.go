package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"currency-gateway/internal/application"
	"currency-gateway/internal/infrastructure/http/openapi"
	"currency-gateway/internal/infrastructure/logx"
	"currency-gateway/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

const reportSuccess = "success"

var _ openapi.ServerInterface = (*Server)(nil)

type Server struct {
	svc     *application.GatewayService
	ping    func(ctx context.Context) error
	metrics *metrics.Metrics
}

func NewServer(svc *application.GatewayService) *Server { return &Server{svc: svc} }

// SetReadyCheck installs the dependency probe behind /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

func (s *Server) SetMetrics(m *metrics.Metrics) { s.metrics = m }

type exchangeRateResponse struct {
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
	ExchangeRate float64 `json:"exchange_rate"`
}

type convertAmountResponse struct {
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	Amount          float64 `json:"amount"`
	ConvertedAmount float64 `json:"converted_amount"`
}

type updateReportResponse struct {
	UpdateReport string      `json:"update_report"`
	Symbol       string      `json:"symbol"`
	NewPrice     json.Number `json:"new_price"`
}

type insertReportResponse struct {
	InsertReport string      `json:"insert_report"`
	Symbol       string      `json:"symbol"`
	Price        json.Number `json:"price"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) GetExchangeRate(w http.ResponseWriter, r *http.Request, params openapi.GetExchangeRateParams) {
	res, err := s.svc.GetExchangeRate(r.Context(), params.FromCurrency, params.ToCurrency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exchangeRateResponse{
		FromCurrency: string(res.From),
		ToCurrency:   string(res.To),
		ExchangeRate: res.Rate,
	})
}

func (s *Server) ConvertAmount(w http.ResponseWriter, r *http.Request, params openapi.ConvertAmountParams) {
	res, err := s.svc.ConvertAmount(r.Context(), params.FromCurrency, params.ToCurrency, params.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertAmountResponse{
		FromCurrency:    string(res.From),
		ToCurrency:      string(res.To),
		Amount:          *res.Amount,
		ConvertedAmount: *res.Converted,
	})
}

func (s *Server) ListAvailableCurrencies(w http.ResponseWriter, r *http.Request, params openapi.ListAvailableCurrenciesParams) {
	codes, err := s.svc.ListAvailableCurrencies(r.Context(), params.FromCurrency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) ListAvailableCrypto(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListAvailableCrypto(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) ConvertCrypto(w http.ResponseWriter, r *http.Request, params openapi.ConvertCryptoParams) {
	q, err := s.svc.GetCryptoQuote(r.Context(), params.FromCrypto, params.ToCurrency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q.Raw)
}

func (s *Server) UpdateAssetPrice(w http.ResponseWriter, r *http.Request, params openapi.UpdateAssetPriceParams) {
	upd, err := s.svc.UpdateAssetPrice(r.Context(), params.Symbol, params.NewPrice, params.XIdempotencyKey)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updateReportResponse{
		UpdateReport: reportSuccess,
		Symbol:       upd.Symbol,
		NewPrice:     json.Number(upd.NewPrice.String()),
	})
}

func (s *Server) NewAsset(w http.ResponseWriter, r *http.Request, params openapi.NewAssetParams) {
	a, err := s.svc.InsertAsset(r.Context(), params.Symbol, params.Price, params.ProductType, params.Name, params.XIdempotencyKey)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insertReportResponse{
		InsertReport: reportSuccess,
		Symbol:       a.Symbol,
		Price:        json.Number(a.Price.String()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Detail: msg})
}

// writeServiceError maps gateway failures onto the wire: every tagged kind is a 400
// with its detail, a reused idempotency key is a 409, anything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var gerr *application.Error
	switch {
	case errors.As(err, &gerr):
		writeError(w, http.StatusBadRequest, gerr.Detail)
	case errors.Is(err, application.ErrConflict):
		writeError(w, http.StatusConflict, "duplicate request")
	default:
		logx.WithFields(r.Context()).Error("unhandled service error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
