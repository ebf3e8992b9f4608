package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/lmercat/productivity-api/internal/models"
)

var (
	ErrBillingNotConfigured = errors.New("billing is not configured")
	ErrInvalidWebhook       = errors.New("invalid webhook payload or signature")
)

const metadataUserIDKey = "user_id"

// BillingService wraps the Stripe integration: checkout sessions for the
// pro plan and webhook events driving the local subscription lifecycle.
type BillingService struct {
	secretKey       string
	webhookSecret   string
	proPriceID      string
	appBaseURL      string
	subscriptionSvc *SubscriptionService
}

// NewBillingService creates a new BillingService. An empty secret key
// leaves billing disabled; checkout and webhook calls then fail with
// ErrBillingNotConfigured.
func NewBillingService(secretKey, webhookSecret, proPriceID, appBaseURL string, subscriptionSvc *SubscriptionService) *BillingService {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &BillingService{
		secretKey:       secretKey,
		webhookSecret:   webhookSecret,
		proPriceID:      proPriceID,
		appBaseURL:      appBaseURL,
		subscriptionSvc: subscriptionSvc,
	}
}

// Configured reports whether Stripe credentials are present.
func (s *BillingService) Configured() bool {
	return s.secretKey != "" && s.webhookSecret != ""
}

// CreateCheckoutSession opens a Stripe checkout for the pro plan and
// returns its redirect URL. The user id travels in the metadata of both
// the checkout session and the resulting subscription.
func (s *BillingService) CreateCheckoutSession(userID uint64) (string, error) {
	if s.secretKey == "" || s.proPriceID == "" {
		return "", ErrBillingNotConfigured
	}

	uid := strconv.FormatUint(userID, 10)
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.proPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.appBaseURL + "/dashboard?checkout=success"),
		CancelURL:  stripe.String(s.appBaseURL + "/pricing?checkout=canceled"),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{metadataUserIDKey: uid},
		},
	}
	params.AddMetadata(metadataUserIDKey, uid)

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook verifies the signed payload and applies the event to the
// local subscription state. Unhandled event types are acknowledged.
func (s *BillingService) HandleWebhook(payload []byte, signatureHeader string) error {
	if !s.Configured() {
		return ErrBillingNotConfigured
	}

	event, err := webhook.ConstructEvent(payload, signatureHeader, s.webhookSecret)
	if err != nil {
		return ErrInvalidWebhook
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(event)
	case "customer.subscription.updated":
		return s.handleSubscriptionUpdated(event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(event)
	default:
		log.WithField("type", event.Type).Debug("Unhandled billing event")
		return nil
	}
}

func (s *BillingService) handleCheckoutCompleted(event stripe.Event) error {
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return ErrInvalidWebhook
	}
	if cs.Mode != stripe.CheckoutSessionModeSubscription || cs.Subscription == nil {
		return nil
	}

	sub, err := subscription.Get(cs.Subscription.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to retrieve subscription: %w", err)
	}

	userID, ok := userIDFromMetadata(sub.Metadata)
	if !ok {
		userID, ok = userIDFromMetadata(cs.Metadata)
	}
	if !ok {
		log.WithField("subscription", sub.ID).Warn("Checkout completed without a user id")
		return nil
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	if err := s.subscriptionSvc.ActivatePlan(userID, models.PlanPro, customerID, sub.ID); err != nil {
		return err
	}
	log.WithField("user_id", userID).Info("Pro subscription activated")
	return nil
}

func (s *BillingService) handleSubscriptionUpdated(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return ErrInvalidWebhook
	}

	userID, ok := userIDFromMetadata(sub.Metadata)
	if !ok {
		return nil
	}

	switch sub.Status {
	case stripe.SubscriptionStatusActive:
		customerID := ""
		if sub.Customer != nil {
			customerID = sub.Customer.ID
		}
		if err := s.subscriptionSvc.ActivatePlan(userID, models.PlanPro, customerID, sub.ID); err != nil {
			return err
		}
		log.WithField("user_id", userID).Info("Pro subscription renewed")
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusPastDue:
		if err := s.subscriptionSvc.Cancel(userID); err != nil {
			return err
		}
		log.WithField("user_id", userID).Info("Subscription canceled")
	}
	return nil
}

func (s *BillingService) handleSubscriptionDeleted(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return ErrInvalidWebhook
	}

	userID, ok := userIDFromMetadata(sub.Metadata)
	if !ok {
		return nil
	}
	if err := s.subscriptionSvc.Cancel(userID); err != nil {
		return err
	}
	log.WithField("user_id", userID).Info("Subscription deleted")
	return nil
}

func userIDFromMetadata(metadata map[string]string) (uint64, bool) {
	raw, ok := metadata[metadataUserIDKey]
	if !ok || raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
