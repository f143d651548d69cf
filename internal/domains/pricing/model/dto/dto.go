package dto

import (
	"hotel/internal/domains/pricing/model"
	"hotel/shared/constant"

	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	RoomType string `json:"room_type" validate:"required,roomtype,max=50"`
	CheckIn  string `json:"check_in"  validate:"required,isodate"`
	CheckOut string `json:"check_out" validate:"required,isodate"`
	Currency string `json:"currency"  validate:"omitempty,len=3"`
}

type NightRateResponse struct {
	Date string `json:"date"`
	Rate string `json:"rate"`
}

type ConvertedAmount struct {
	Currency     string `json:"currency"`
	ExchangeRate string `json:"exchange_rate"`
	Total        string `json:"total"`
}

type QuoteResponse struct {
	RoomType    string              `json:"room_type"`
	CheckIn     string              `json:"check_in"`
	CheckOut    string              `json:"check_out"`
	Nights      int                 `json:"nights"`
	Currency    string              `json:"currency"`
	NightlyRate string              `json:"nightly_rate"`
	Subtotal    string              `json:"subtotal"`
	TaxRate     string              `json:"tax_rate"`
	Taxes       string              `json:"taxes"`
	Total       string              `json:"total"`
	Nightly     []NightRateResponse `json:"nightly"`
	Converted   *ConvertedAmount    `json:"converted,omitempty"`
}

func Money(amount decimal.Decimal) string {
	return amount.StringFixed(model.MoneyPlaces)
}

func (r *QuoteResponse) FromModel(quote model.Quote, currency string) {
	r.RoomType = quote.RoomType
	r.CheckIn = quote.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = quote.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = quote.Nights
	r.Currency = currency
	r.NightlyRate = Money(quote.NightlyRate)
	r.Subtotal = Money(quote.Subtotal)
	r.TaxRate = quote.TaxRate.String()
	r.Taxes = Money(quote.Taxes)
	r.Total = Money(quote.Total)

	r.Nightly = make([]NightRateResponse, len(quote.Nightly))
	for i, night := range quote.Nightly {
		r.Nightly[i] = NightRateResponse{
			Date: night.Date.Format(constant.DateOnlyFormat),
			Rate: Money(night.Rate),
		}
	}
}
