package payments

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChargeRequest carries everything any backend could need; each method
// reads only its own fields.
type ChargeRequest struct {
	Amount         int64
	Phone          string
	CardToken      string
	OrderReference string
	Description    string
}

// Gateway presents one charge call over every payment backend. Backends
// never return an error to the caller: anything that prevents a charge
// collapses into a Declined outcome with a reason.
type Gateway interface {
	Charge(ctx context.Context, method Method, req ChargeRequest) Outcome
}

type PaymentGateway struct {
	carriers map[Method]MobileMoneyClient
	cards    CardCharger
	currency string
	timeout  time.Duration
}

func NewPaymentGateway(carriers map[Method]MobileMoneyClient, cards CardCharger, currency string, timeout time.Duration) *PaymentGateway {
	return &PaymentGateway{
		carriers: carriers,
		cards:    cards,
		currency: currency,
		timeout:  timeout,
	}
}

// Charge runs a single attempt against the selected backend. No retries:
// a timed-out call is reported as declined, never silently re-sent.
func (g *PaymentGateway) Charge(ctx context.Context, method Method, req ChargeRequest) Outcome {
	switch method {
	case MethodCashOnDelivery:
		// No external call. The order is taken and settled at the doorstep.
		return Secured("COD-"+uuid.New().String()[:8], "payment due on delivery")

	case MethodMpesa, MethodTigoPesa, MethodAirtelMoney:
		return g.chargeMobileMoney(ctx, method, req)

	case MethodCard:
		return g.chargeCard(ctx, req)

	default:
		return Declined("unsupported payment method")
	}
}

func (g *PaymentGateway) chargeMobileMoney(ctx context.Context, method Method, req ChargeRequest) Outcome {
	// Reject malformed numbers before any network call is attempted.
	if !ValidatePhone(req.Phone) {
		return Declined("invalid phone number")
	}

	client, ok := g.carriers[method]
	if !ok {
		return Declined("payment method not configured: " + method.String())
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := client.Initiate(callCtx, InitiationRequest{
		Amount:         req.Amount,
		PhoneNumber:    NormalizePhone(req.Phone),
		OrderReference: req.OrderReference,
		Description:    req.Description,
	})
	if err != nil {
		if isTimeout(err) {
			zap.L().Warn("mobile money charge timed out",
				zap.String("method", method.String()),
				zap.String("order_ref", req.OrderReference),
			)
			return TimedOut()
		}
		return Declined("carrier unavailable: " + err.Error())
	}

	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = result.Message
		}
		if reason == "" {
			reason = "payment declined by carrier"
		}
		return Declined(reason)
	}

	note := result.Message
	if note == "" {
		note = "payment initiated, awaiting confirmation on customer phone"
	}
	return Pending(result.TransactionID, note)
}

func (g *PaymentGateway) chargeCard(ctx context.Context, req ChargeRequest) Outcome {
	// Tokenization happens in the checkout form; no token means the form
	// step was skipped, not that the card was refused.
	if req.CardToken == "" {
		return Declined("missing payment token")
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.cards.Charge(callCtx, req.Amount, g.currency, req.CardToken, req.OrderReference)
	if err != nil {
		if isTimeout(err) {
			zap.L().Warn("card charge timed out", zap.String("order_ref", req.OrderReference))
			return TimedOut()
		}
		return Declined("card processor unavailable: " + err.Error())
	}

	if !result.Succeeded {
		return Declined(result.Message)
	}
	return Secured(result.TransactionID, result.Message)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
