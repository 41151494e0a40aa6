package expiration

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"freshkeep/entities"
	"freshkeep/internal/utils"
	"freshkeep/internal/utils/mailing"
	"freshkeep/pkg/product"
)

// Scheduler triggers a global evaluation pass on a fixed interval and,
// when enabled, mails each user a digest of products about to expire.
type Scheduler struct {
	engine            Engine
	productRepository product.ProductRepository
	userRepository    UserLister
	interval          time.Duration
	sendMail          bool
}

func NewScheduler(engine Engine, productRepository product.ProductRepository, userRepository UserLister) *Scheduler {
	minutes := configInt("EVALUATION_INTERVAL_MINUTES", 60)
	if minutes < 1 {
		minutes = 60
	}

	return &Scheduler{
		engine:            engine,
		productRepository: productRepository,
		userRepository:    userRepository,
		interval:          time.Duration(minutes) * time.Minute,
		sendMail:          utils.GetConfig("SEND_EXPIRY_MAIL_DAILY") == "true",
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.engine.EvaluateAll(ctx); err != nil {
				log.Printf("scheduled expiration pass failed: %v", err)
				continue
			}
			if s.sendMail {
				s.sendDigests(ctx)
			}
		}
	}
}

func (s *Scheduler) sendDigests(ctx context.Context) {
	users, err := s.userRepository.GetAllActiveUsers(ctx)
	if err != nil {
		log.Printf("expiry digest: listing users failed: %v", err)
		return
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, s.engine.SoonThresholdDays())

	for _, u := range users {
		products, err := s.productRepository.GetProductsByExpirationRange(ctx, u.ID.String(), now, cutoff)
		if err != nil {
			log.Printf("expiry digest: user %s: %v", u.ID, err)
			continue
		}
		if len(products) == 0 {
			continue
		}

		if err := mailing.SendMail(u.Email, "Products expiring soon", digestBody(u, products, now)); err != nil {
			log.Printf("expiry digest: sending to %s failed: %v", u.Email, err)
		}
	}
}

func digestBody(u *entities.User, products []*entities.Product, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>Hi %s,</p>", u.FullName))
	b.WriteString("<p>These products in your inventory expire soon:</p><ul>")
	for _, p := range products {
		b.WriteString(fmt.Sprintf("<li>%s (%g %s): %s</li>",
			p.Name, p.Quantity, p.Unit, expiringMessage(p.Name, p.DaysUntilExpiration(now))))
	}
	b.WriteString("</ul><p>Cook them before they go to waste!</p>")
	return b.String()
}
