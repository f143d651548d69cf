package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/payment"
	paymentMocks "hotel/infras/payment/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/payment/model/dto"
	"hotel/internal/domains/payment/service"
	"hotel/shared/failure"
)

type fixture struct {
	repo    *bookingMocks.MockReservation
	booking *bookingMocks.MockBooking
	gateway *paymentMocks.MockGateway
	svc     service.Payment
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.Payment.Currency = "USD"
	cfg.Payment.KeyID = "rzp_test_key"

	f := fixture{
		repo:    bookingMocks.NewMockReservation(ctrl),
		booking: bookingMocks.NewMockBooking(ctrl),
		gateway: paymentMocks.NewMockGateway(ctrl),
	}
	f.svc = service.New(f.repo, f.booking, f.gateway, cfg, mocks.NewOtel())

	return f
}

func reservation(status, paymentStatus string) bookingModel.Reservation {
	return bookingModel.Reservation{
		ID:               "2b7e1c3a-7f0d-4a0e-9d8e-3c1b5f6a7d90",
		ConfirmationCode: "CC7K2M9QXR4T",
		RoomType:         "ocean-view",
		TotalAmount:      decimal.RequireFromString("417.60"),
		Status:           status,
		PaymentStatus:    paymentStatus,
	}
}

func TestPaymentService_CreateIntent(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateIntentRequest
		setupMock func(f fixture)
		want      dto.IntentResponse
		wantErr   bool
		category  failure.Category
	}{
		{
			name: "intent in the default currency",
			req:  dto.CreateIntentRequest{ConfirmationCode: "cc7k2m9qxr4t"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(bookingModel.StatusPending, bookingModel.PaymentPending), nil)
				f.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req payment.IntentRequest) (payment.Intent, error) {
						assert.Equal(t, int64(41760), req.Amount)
						assert.Equal(t, "USD", req.Currency)
						assert.Equal(t, "CC7K2M9QXR4T", req.Reference)

						return payment.Intent{ID: "order_1", Status: payment.IntentStatusPending}, nil
					})
				f.booking.EXPECT().AttachPaymentIntent(gomock.Any(), "2b7e1c3a-7f0d-4a0e-9d8e-3c1b5f6a7d90", "order_1", "USD").Return(nil)
			},
			want: dto.IntentResponse{
				IntentID:         "order_1",
				ConfirmationCode: "CC7K2M9QXR4T",
				KeyID:            "rzp_test_key",
				Currency:         "USD",
				Amount:           "417.60",
				AmountMinor:      41760,
				TotalUSD:         "417.60",
			},
		},
		{
			name: "converted collection currency",
			req:  dto.CreateIntentRequest{ReservationID: "2b7e1c3a-7f0d-4a0e-9d8e-3c1b5f6a7d90", Currency: "eur"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(bookingModel.StatusPending, bookingModel.PaymentPending), nil)
				f.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(payment.Intent{ID: "order_2"}, nil)
				f.booking.EXPECT().AttachPaymentIntent(gomock.Any(), gomock.Any(), "order_2", "EUR").Return(nil)
			},
			want: dto.IntentResponse{
				IntentID:         "order_2",
				ConfirmationCode: "CC7K2M9QXR4T",
				KeyID:            "rzp_test_key",
				Currency:         "EUR",
				Amount:           "354.96",
				AmountMinor:      35496,
				TotalUSD:         "417.60",
			},
		},
		{
			name: "existing intent is reused",
			req:  dto.CreateIntentRequest{ConfirmationCode: "CC7K2M9QXR4T"},
			setupMock: func(f fixture) {
				r := reservation(bookingModel.StatusPending, bookingModel.PaymentPending)
				intent := "order_old"
				r.PaymentIntentID = &intent
				r.PaymentCurrency = "USD"

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(r, nil)
			},
			want: dto.IntentResponse{
				IntentID:         "order_old",
				ConfirmationCode: "CC7K2M9QXR4T",
				KeyID:            "rzp_test_key",
				Currency:         "USD",
				Amount:           "417.60",
				AmountMinor:      41760,
				TotalUSD:         "417.60",
			},
		},
		{
			name: "existing intent is reused in its own currency",
			req:  dto.CreateIntentRequest{ConfirmationCode: "CC7K2M9QXR4T"},
			setupMock: func(f fixture) {
				r := reservation(bookingModel.StatusPending, bookingModel.PaymentPending)
				intent := "order_eur"
				r.PaymentIntentID = &intent
				r.PaymentCurrency = "EUR"

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(r, nil)
			},
			want: dto.IntentResponse{
				IntentID:         "order_eur",
				ConfirmationCode: "CC7K2M9QXR4T",
				KeyID:            "rzp_test_key",
				Currency:         "EUR",
				Amount:           "354.96",
				AmountMinor:      35496,
				TotalUSD:         "417.60",
			},
		},
		{
			name: "switching currency after an order exists",
			req:  dto.CreateIntentRequest{ConfirmationCode: "CC7K2M9QXR4T", Currency: "USD"},
			setupMock: func(f fixture) {
				r := reservation(bookingModel.StatusPending, bookingModel.PaymentPending)
				intent := "order_eur"
				r.PaymentIntentID = &intent
				r.PaymentCurrency = "EUR"

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(r, nil)
			},
			wantErr:  true,
			category: failure.CategoryConflict,
		},
		{
			name: "already paid",
			req:  dto.CreateIntentRequest{ConfirmationCode: "CC7K2M9QXR4T"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(bookingModel.StatusConfirmed, bookingModel.PaymentPaid), nil)
			},
			wantErr:  true,
			category: failure.CategoryConflict,
		},
		{
			name: "cancelled booking",
			req:  dto.CreateIntentRequest{ConfirmationCode: "CC7K2M9QXR4T"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(bookingModel.StatusCancelled, bookingModel.PaymentPending), nil)
			},
			wantErr:  true,
			category: failure.CategoryConflict,
		},
		{
			name: "unsupported currency",
			req:  dto.CreateIntentRequest{ConfirmationCode: "CC7K2M9QXR4T", Currency: "JPY"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(bookingModel.StatusPending, bookingModel.PaymentPending), nil)
			},
			wantErr:  true,
			category: failure.CategoryValidation,
		},
		{
			name: "unknown reservation",
			req:  dto.CreateIntentRequest{ConfirmationCode: "CCNOPE"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Reservation{}, nil)
			},
			wantErr:  true,
			category: failure.CategoryNotFound,
		},
		{
			name: "provider failure",
			req:  dto.CreateIntentRequest{ConfirmationCode: "CC7K2M9QXR4T"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(bookingModel.StatusPending, bookingModel.PaymentPending), nil)
				f.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(payment.Intent{}, errors.New("gateway timeout"))
			},
			wantErr:  true,
			category: failure.CategoryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CreateIntent(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.category, failure.GetCategory(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestPaymentService_Confirm(t *testing.T) {
	t.Run("paid intent confirms the booking", func(t *testing.T) {
		f := newFixture(t)

		f.gateway.EXPECT().FetchIntent(gomock.Any(), "order_1").Return(payment.Intent{ID: "order_1", Status: payment.IntentStatusPaid}, nil)
		f.booking.EXPECT().MarkPaid(gomock.Any(), "order_1").
			Return(bookingDto.ReservationResponse{Status: bookingModel.StatusConfirmed, PaymentStatus: bookingModel.PaymentPaid}, nil)

		res, err := f.svc.Confirm(context.Background(), dto.ConfirmRequest{IntentID: "order_1"})
		require.NoError(t, err)
		assert.Equal(t, bookingModel.StatusConfirmed, res.Status)
	})

	t.Run("pending intent is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.gateway.EXPECT().FetchIntent(gomock.Any(), "order_1").Return(payment.Intent{ID: "order_1", Status: payment.IntentStatusPending}, nil)

		_, err := f.svc.Confirm(context.Background(), dto.ConfirmRequest{IntentID: "order_1"})
		require.Error(t, err)
		assert.Equal(t, failure.CategoryValidation, failure.GetCategory(err))
	})
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	body := []byte(`{"event":"order.paid"}`)

	tests := []struct {
		name      string
		setupMock func(f fixture)
		want      dto.WebhookResponse
		wantErr   bool
		category  failure.Category
	}{
		{
			name: "bad signature",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().VerifyWebhook(body, "sig").Return(false)
			},
			wantErr:  true,
			category: failure.CategoryUnauthorized,
		},
		{
			name: "payment succeeded",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().VerifyWebhook(body, "sig").Return(true)
				f.gateway.EXPECT().ParseWebhook(body).Return(payment.Event{Type: payment.EventPaymentSucceeded, IntentID: "order_1"}, nil)
				f.booking.EXPECT().MarkPaid(gomock.Any(), "order_1").Return(bookingDto.ReservationResponse{}, nil)
			},
			want: dto.WebhookResponse{Event: payment.EventPaymentSucceeded, IntentID: "order_1", Handled: true},
		},
		{
			name: "payment failed",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().VerifyWebhook(body, "sig").Return(true)
				f.gateway.EXPECT().ParseWebhook(body).Return(payment.Event{Type: payment.EventPaymentFailed, IntentID: "order_1"}, nil)
				f.booking.EXPECT().MarkPaymentFailed(gomock.Any(), "order_1").Return(nil)
			},
			want: dto.WebhookResponse{Event: payment.EventPaymentFailed, IntentID: "order_1", Handled: true},
		},
		{
			name: "unknown event is acknowledged",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().VerifyWebhook(body, "sig").Return(true)
				f.gateway.EXPECT().ParseWebhook(body).Return(payment.Event{Type: payment.EventIgnored, IntentID: "order_1"}, nil)
			},
			want: dto.WebhookResponse{Event: payment.EventIgnored, IntentID: "order_1"},
		},
		{
			name: "success for a cancelled booking is acknowledged but not applied",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().VerifyWebhook(body, "sig").Return(true)
				f.gateway.EXPECT().ParseWebhook(body).Return(payment.Event{Type: payment.EventPaymentSucceeded, IntentID: "order_1"}, nil)
				f.booking.EXPECT().MarkPaid(gomock.Any(), "order_1").Return(bookingDto.ReservationResponse{}, failure.Conflict("reservation is cancelled"))
			},
			want: dto.WebhookResponse{Event: payment.EventPaymentSucceeded, IntentID: "order_1"},
		},
		{
			name: "store failure asks for redelivery",
			setupMock: func(f fixture) {
				f.gateway.EXPECT().VerifyWebhook(body, "sig").Return(true)
				f.gateway.EXPECT().ParseWebhook(body).Return(payment.Event{Type: payment.EventPaymentSucceeded, IntentID: "order_1"}, nil)
				f.booking.EXPECT().MarkPaid(gomock.Any(), "order_1").Return(bookingDto.ReservationResponse{}, errors.New("db down"))
			},
			wantErr:  true,
			category: failure.CategoryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.HandleWebhook(context.Background(), body, "sig")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.category, failure.GetCategory(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestPaymentService_Status(t *testing.T) {
	f := newFixture(t)

	r := reservation(bookingModel.StatusConfirmed, bookingModel.PaymentPaid)
	intent := "order_1"
	r.PaymentIntentID = &intent

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(r, nil)

	res, err := f.svc.Status(context.Background(), "cc7k2m9qxr4t")
	require.NoError(t, err)
	assert.Equal(t, "CC7K2M9QXR4T", res.ConfirmationCode)
	assert.Equal(t, bookingModel.PaymentPaid, res.PaymentStatus)
	assert.Equal(t, "order_1", res.PaymentIntentID)
	assert.Equal(t, "417.60", res.TotalAmount)
}
