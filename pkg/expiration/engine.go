package expiration

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/internal/utils"
	"freshkeep/pkg/notification"
	"freshkeep/pkg/product"

	"github.com/google/uuid"
)

const (
	DefaultSoonThresholdDays = 3
	DefaultLowStockThreshold = 1.0
)

type (
	// Engine runs the expiration evaluation pass: it recomputes the
	// derived expiry state of every ACTIVE product of a user, moves
	// overdue products to EXPIRED and emits the corresponding
	// notifications. A pass is idempotent; re-running it against
	// unchanged products creates nothing new.
	Engine interface {
		EvaluateUser(ctx context.Context, userID string) (domain.EvaluationResult, error)
		EvaluateAll(ctx context.Context) error
		SoonThresholdDays() int
	}

	engine struct {
		productRepository      product.ProductRepository
		notificationRepository notification.NotificationRepository
		userRepository         UserLister

		soonThresholdDays int
		lowStockThreshold float64

		mu        sync.Mutex
		userLocks map[string]*sync.Mutex
	}

	// UserLister is the slice of the user repository the engine needs to
	// iterate all accounts during a global pass.
	UserLister interface {
		GetAllActiveUsers(ctx context.Context) ([]*entities.User, error)
	}
)

func NewEngine(productRepository product.ProductRepository, notificationRepository notification.NotificationRepository, userRepository UserLister) Engine {
	return &engine{
		productRepository:      productRepository,
		notificationRepository: notificationRepository,
		userRepository:         userRepository,
		soonThresholdDays:      configInt("EXPIRING_SOON_DAYS", DefaultSoonThresholdDays),
		lowStockThreshold:      configFloat("LOW_STOCK_THRESHOLD", DefaultLowStockThreshold),
		userLocks:              make(map[string]*sync.Mutex),
	}
}

func (e *engine) SoonThresholdDays() int {
	return e.soonThresholdDays
}

// EvaluateUser serializes passes per user: two concurrent passes for the
// same user run one after the other, passes for different users do not
// contend.
func (e *engine) EvaluateUser(ctx context.Context, userID string) (domain.EvaluationResult, error) {
	lock := e.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	result := domain.EvaluationResult{}

	products, err := e.productRepository.GetActiveProducts(ctx, userID)
	if err != nil {
		return result, err
	}

	now := time.Now()

	for _, p := range products {
		result.Evaluated++

		if p.ExpirationDate.IsZero() {
			log.Printf("expiration pass: skipping product %s (%s): missing expiration date", p.ID, p.Name)
			result.Skipped = append(result.Skipped, p.ID.String())
			continue
		}

		days := p.DaysUntilExpiration(now)

		switch {
		case days < 0:
			if err := e.expireProduct(ctx, p); err != nil {
				return result, err
			}
			result.Expired++
			created, err := e.emit(ctx, p, entities.NotificationExpired,
				fmt.Sprintf("%s has expired", p.Name),
				fmt.Sprintf("%s expired %d day(s) ago. Mark it as wasted or remove it from your inventory.", p.Name, -days))
			if err != nil {
				return result, err
			}
			if created {
				result.Notified++
			}
		case days <= e.soonThresholdDays:
			result.ExpiringSoon++
			created, err := e.emit(ctx, p, entities.NotificationExpiringSoon,
				fmt.Sprintf("%s expires soon", p.Name),
				expiringMessage(p.Name, days))
			if err != nil {
				return result, err
			}
			if created {
				result.Notified++
			}
		}

		if p.Status == entities.StatusActive && p.Quantity <= e.lowStockThreshold {
			result.LowStock++
			created, err := e.emit(ctx, p, entities.NotificationLowStock,
				fmt.Sprintf("%s is running low", p.Name),
				fmt.Sprintf("Only %g %s of %s left. Add it to your shopping list.", p.Quantity, p.Unit, p.Name))
			if err != nil {
				return result, err
			}
			if created {
				result.Notified++
			}
		}
	}

	return result, nil
}

func (e *engine) EvaluateAll(ctx context.Context) error {
	users, err := e.userRepository.GetAllActiveUsers(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		if _, err := e.EvaluateUser(ctx, u.ID.String()); err != nil {
			log.Printf("expiration pass: user %s: %v", u.ID, err)
		}
	}

	return nil
}

func (e *engine) expireProduct(ctx context.Context, p *entities.Product) error {
	if !p.Status.CanTransitionTo(entities.StatusExpired) {
		return nil
	}
	if err := e.productRepository.UpdateProductStatus(ctx, p.ID.String(), entities.StatusExpired); err != nil {
		return err
	}
	p.Status = entities.StatusExpired
	return nil
}

func (e *engine) emit(ctx context.Context, p *entities.Product, notificationType entities.NotificationType, title, message string) (bool, error) {
	productID := p.ID
	n := &entities.Notification{
		ID:        uuid.New(),
		UserID:    p.UserID,
		ProductID: &productID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		IsRead:    false,
	}
	return e.notificationRepository.CreateIfAbsent(ctx, n)
}

func (e *engine) lockFor(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	return lock
}

func expiringMessage(name string, days int) string {
	switch days {
	case 0:
		return fmt.Sprintf("%s expires today. Use it now!", name)
	case 1:
		return fmt.Sprintf("%s expires tomorrow.", name)
	default:
		return fmt.Sprintf("%s expires in %d days.", name, days)
	}
}

func configInt(key string, fallback int) int {
	raw := utils.GetConfig(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func configFloat(key string, fallback float64) float64 {
	raw := utils.GetConfig(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
