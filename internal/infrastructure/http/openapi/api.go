// Package openapi binds the gateway's query-string contract onto a chi router.
// Handlers receive typed parameter structs; binding failures go to ErrorHandlerFunc.
package openapi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

const IdempotencyHeader = "X-Idempotency-Key"

type GetExchangeRateParams struct {
	FromCurrency string `form:"from_currency" json:"from_currency"`
	ToCurrency   string `form:"to_currency" json:"to_currency"`
}

type ConvertAmountParams struct {
	FromCurrency string `form:"from_currency" json:"from_currency"`
	ToCurrency   string `form:"to_currency" json:"to_currency"`
	Amount       string `form:"amount" json:"amount"`
}

// ListAvailableCurrenciesParams keeps to_currency only so older clients still bind; it has no effect.
type ListAvailableCurrenciesParams struct {
	FromCurrency string  `form:"from_currency" json:"from_currency"`
	ToCurrency   *string `form:"to_currency,omitempty" json:"to_currency,omitempty"`
}

type ConvertCryptoParams struct {
	FromCrypto string `form:"from_crypto" json:"from_crypto"`
	ToCurrency string `form:"to_currency" json:"to_currency"`
}

type UpdateAssetPriceParams struct {
	Symbol          string  `form:"symbol" json:"symbol"`
	NewPrice        string  `form:"new_price" json:"new_price"`
	XIdempotencyKey *string `json:"X-Idempotency-Key,omitempty"`
}

type NewAssetParams struct {
	Symbol          string  `form:"symbol" json:"symbol"`
	Price           string  `form:"price" json:"price"`
	ProductType     string  `form:"productType" json:"productType"`
	Name            string  `form:"name" json:"name"`
	XIdempotencyKey *string `json:"X-Idempotency-Key,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /exchange_rate)
	GetExchangeRate(w http.ResponseWriter, r *http.Request, params GetExchangeRateParams)
	// (GET /convert_amount)
	ConvertAmount(w http.ResponseWriter, r *http.Request, params ConvertAmountParams)
	// (GET /available_currencies)
	ListAvailableCurrencies(w http.ResponseWriter, r *http.Request, params ListAvailableCurrenciesParams)
	// (GET /available_crypto)
	ListAvailableCrypto(w http.ResponseWriter, r *http.Request)
	// (GET /convert_crypto)
	ConvertCrypto(w http.ResponseWriter, r *http.Request, params ConvertCryptoParams)
	// (GET /update_orderbookdb_asset_price)
	UpdateAssetPrice(w http.ResponseWriter, r *http.Request, params UpdateAssetPriceParams)
	// (GET /new_orderbookdb_asset)
	NewAsset(w http.ResponseWriter, r *http.Request, params NewAssetParams)
}

type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("%s is required", e.ParamName)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func bindQuery(q url.Values, name string, required bool, dest any) error {
	if _, ok := q[name]; !ok && required {
		return &RequiredParamError{ParamName: name}
	}
	if err := runtime.BindQueryParameter("form", true, required, name, q, dest); err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

type queryParam struct {
	name string
	dest any
}

// bindRequired binds params in order and stops at the first failure.
func bindRequired(q url.Values, params ...queryParam) error {
	for _, p := range params {
		if err := bindQuery(q, p.name, true, p.dest); err != nil {
			return err
		}
	}
	return nil
}

func idempotencyKey(r *http.Request) *string {
	if v := r.Header.Get(IdempotencyHeader); v != "" {
		return &v
	}
	return nil
}

func (siw *ServerInterfaceWrapper) GetExchangeRate(w http.ResponseWriter, r *http.Request) {
	var params GetExchangeRateParams
	if err := bindRequired(r.URL.Query(),
		queryParam{"from_currency", &params.FromCurrency},
		queryParam{"to_currency", &params.ToCurrency},
	); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.Handler.GetExchangeRate(w, r, params)
}

func (siw *ServerInterfaceWrapper) ConvertAmount(w http.ResponseWriter, r *http.Request) {
	var params ConvertAmountParams
	if err := bindRequired(r.URL.Query(),
		queryParam{"from_currency", &params.FromCurrency},
		queryParam{"to_currency", &params.ToCurrency},
		queryParam{"amount", &params.Amount},
	); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.Handler.ConvertAmount(w, r, params)
}

func (siw *ServerInterfaceWrapper) ListAvailableCurrencies(w http.ResponseWriter, r *http.Request) {
	var params ListAvailableCurrenciesParams
	q := r.URL.Query()
	if err := bindQuery(q, "from_currency", true, &params.FromCurrency); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	if err := bindQuery(q, "to_currency", false, &params.ToCurrency); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.Handler.ListAvailableCurrencies(w, r, params)
}

func (siw *ServerInterfaceWrapper) ListAvailableCrypto(w http.ResponseWriter, r *http.Request) {
	siw.Handler.ListAvailableCrypto(w, r)
}

func (siw *ServerInterfaceWrapper) ConvertCrypto(w http.ResponseWriter, r *http.Request) {
	var params ConvertCryptoParams
	if err := bindRequired(r.URL.Query(),
		queryParam{"from_crypto", &params.FromCrypto},
		queryParam{"to_currency", &params.ToCurrency},
	); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.Handler.ConvertCrypto(w, r, params)
}

func (siw *ServerInterfaceWrapper) UpdateAssetPrice(w http.ResponseWriter, r *http.Request) {
	var params UpdateAssetPriceParams
	if err := bindRequired(r.URL.Query(),
		queryParam{"symbol", &params.Symbol},
		queryParam{"new_price", &params.NewPrice},
	); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	params.XIdempotencyKey = idempotencyKey(r)
	siw.Handler.UpdateAssetPrice(w, r, params)
}

func (siw *ServerInterfaceWrapper) NewAsset(w http.ResponseWriter, r *http.Request) {
	var params NewAssetParams
	if err := bindRequired(r.URL.Query(),
		queryParam{"symbol", &params.Symbol},
		queryParam{"price", &params.Price},
		queryParam{"productType", &params.ProductType},
		queryParam{"name", &params.Name},
	); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	params.XIdempotencyKey = idempotencyKey(r)
	siw.Handler.NewAsset(w, r, params)
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts every route of si on options.BaseRouter (a new router when nil).
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/exchange_rate", wrapper.GetExchangeRate)
		r.Get(options.BaseURL+"/convert_amount", wrapper.ConvertAmount)
		r.Get(options.BaseURL+"/available_currencies", wrapper.ListAvailableCurrencies)
		r.Get(options.BaseURL+"/available_crypto", wrapper.ListAvailableCrypto)
		r.Get(options.BaseURL+"/convert_crypto", wrapper.ConvertCrypto)
		r.Get(options.BaseURL+"/update_orderbookdb_asset_price", wrapper.UpdateAssetPrice)
		r.Get(options.BaseURL+"/new_orderbookdb_asset", wrapper.NewAsset)
	})
	return r
}
