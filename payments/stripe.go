package payments

import (
	"context"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// CardResult is the normalized result of a card charge attempt.
type CardResult struct {
	TransactionID string
	Succeeded     bool
	Message       string
}

// CardCharger submits an already-tokenized card payment.
type CardCharger interface {
	Charge(ctx context.Context, amount int64, currency, token, orderRef string) (*CardResult, error)
}

// StripeCharger charges cards through Stripe PaymentIntents. The token
// comes from the client-side tokenization widget; raw card data never
// reaches this service.
type StripeCharger struct {
	secretKey string
}

func NewStripeCharger(secretKey string) *StripeCharger {
	stripe.Key = secretKey
	return &StripeCharger{secretKey: secretKey}
}

func (s *StripeCharger) Charge(ctx context.Context, amount int64, currency, token, orderRef string) (*CardResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(token),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String("Order " + orderRef),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok {
			return &CardResult{Succeeded: false, Message: stripeErr.Msg}, nil
		}
		return nil, err
	}

	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		return &CardResult{TransactionID: pi.ID, Succeeded: true, Message: "card payment confirmed"}, nil
	}
	return &CardResult{
		TransactionID: pi.ID,
		Succeeded:     false,
		Message:       "card payment not completed: " + string(pi.Status),
	}, nil
}
