package handlers

import (
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/lmercat/productivity-api/internal/dto"
	apierrors "github.com/lmercat/productivity-api/internal/errors"
	"github.com/lmercat/productivity-api/internal/middleware"
	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/services"
)

const maxWebhookBodyBytes = 64 * 1024

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	billingService      *services.BillingService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, billingService *services.BillingService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		billingService:      billingService,
	}
}

// GetSubscription returns the caller's plan, limits and current usage.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	subscription, err := h.subscriptionService.GetActiveSubscription(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load subscription")
		return
	}
	plan := models.PlanFree
	if subscription != nil {
		plan = subscription.Plan
	}

	notesToday, err := h.subscriptionService.NotesCreatedToday(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to count notes")
		return
	}
	remindersLeft, err := h.subscriptionService.RemainingRemindersThisMonth(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to count reminders")
		return
	}
	if remindersLeft == math.MaxInt {
		remindersLeft = -1
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionDTO(plan, subscription, notesToday, remindersLeft))
}

// ListPlans returns every plan with its limits and price.
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans := gin.H{}
	for plan, limits := range models.Limits {
		plans[string(plan)] = dto.ToPlanLimitsDTO(limits)
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// CreateCheckout starts a payment checkout for the pro plan and returns
// the redirect URL.
func (h *SubscriptionHandler) CreateCheckout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	url, err := h.billingService.CreateCheckoutSession(userID)
	if err != nil {
		if errors.Is(err, services.ErrBillingNotConfigured) {
			apierrors.InternalError(c, "Billing is not configured")
			return
		}
		log.WithError(err).Error("Checkout session creation failed")
		apierrors.InternalError(c, "Failed to start checkout")
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url})
}

// HandleWebhook receives signed payment-processor events. It must stay
// outside the authenticated route group.
func (h *SubscriptionHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		apierrors.BadRequest(c, "Failed to read request body")
		return
	}

	if err := h.billingService.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		if errors.Is(err, services.ErrInvalidWebhook) {
			apierrors.BadRequest(c, "Invalid webhook signature")
			return
		}
		log.WithError(err).Error("Webhook processing failed")
		apierrors.InternalError(c, "Failed to process webhook")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
