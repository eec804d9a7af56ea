package services

import (
	"errors"
	"strings"

	"kudos/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RewardService owns the reward catalog and the redemption lifecycle.
// Redeeming couples the ledger debit, the stock decrement and the
// redemption row inside one DB transaction; cancelling a PENDING redemption
// couples the refund and the stock restore the same way.
type RewardService struct {
	Db     *gorm.DB
	Points *PointsService
}

// NewRewardService creates a reward service on top of a gorm connection.
func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{Db: db, Points: NewPointsService(db)}
}

// CategoryStat counts active rewards per category.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// RedemptionStat aggregates redemptions per status.
type RedemptionStat struct {
	Status      models.RedemptionStatus `json:"status"`
	Count       int64                   `json:"count"`
	PointsSpent int64                   `json:"pointsSpent"`
}

// RewardStatistics is the admin analytics payload.
type RewardStatistics struct {
	TotalRewards       int64            `json:"totalRewards"`
	ActiveRewards      int64            `json:"activeRewards"`
	TotalRedemptions   int64            `json:"totalRedemptions"`
	PendingRedemptions int64            `json:"pendingRedemptions"`
	CategoryStats      []CategoryStat   `json:"categoryStats"`
	RedemptionStats    []RedemptionStat `json:"redemptionStats"`
}

// Create adds a reward to the catalog.
func (s *RewardService) Create(reward *models.Reward) error {
	return s.Db.Create(reward).Error
}

// List returns catalog rewards, cheapest first within each category.
func (s *RewardService) List(activeOnly bool) ([]models.Reward, error) {
	query := s.Db.Order("category ASC, points_cost ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rewards []models.Reward
	if err := query.Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// Get returns one reward by ID.
func (s *RewardService) Get(id uint) (*models.Reward, error) {
	var reward models.Reward
	if err := s.Db.First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	return &reward, nil
}

// Save persists admin edits to a reward loaded via Get.
func (s *RewardService) Save(reward *models.Reward) error {
	return s.Db.Save(reward).Error
}

// Delete removes a reward from the catalog. Blocked while any PENDING
// redemption still references it.
func (s *RewardService) Delete(id uint) error {
	return s.Db.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}

		var pending int64
		err := tx.Model(&models.RewardRedemption{}).
			Where("reward_id = ? AND status = ?", id, models.RedemptionStatusPending).
			Count(&pending).Error
		if err != nil {
			return err
		}
		if pending > 0 {
			return ErrPendingRedemptions
		}

		return tx.Delete(&reward).Error
	})
}

// Redeem exchanges the reward's cost in points for a PENDING redemption.
// The ledger debit, the stock decrement (limited rewards only) and the
// redemption row commit or roll back together.
func (s *RewardService) Redeem(userID, rewardID uint) (*models.RewardRedemption, error) {
	var redemption models.RewardRedemption

	err := s.Db.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}

		if !reward.IsActive {
			return ErrRewardInactive
		}
		if reward.StockQuantity != nil && *reward.StockQuantity <= 0 {
			return ErrOutOfStock
		}

		if _, err := s.Points.SpendTx(tx, userID, reward.PointsCost, "Redeemed reward: "+reward.Title, rewardID); err != nil {
			return err
		}

		// Unlimited rewards never touch stock. Limited rewards decrement
		// through a guarded update so concurrent redemptions cannot drive
		// the stock negative.
		if reward.StockQuantity != nil {
			res := tx.Model(&models.Reward{}).
				Where("id = ? AND stock_quantity > 0", rewardID).
				Update("stock_quantity", gorm.Expr("stock_quantity - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrOutOfStock
			}
		}

		redemption = models.RewardRedemption{
			UserID:         userID,
			RewardID:       rewardID,
			PointsSpent:    reward.PointsCost,
			Status:         models.RedemptionStatusPending,
			RedemptionCode: generateRedemptionCode(),
		}
		if err := tx.Create(&redemption).Error; err != nil {
			return err
		}

		return tx.Preload("User").Preload("Reward").First(&redemption, redemption.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &redemption, nil
}

// UpdateStatus moves a redemption to a new lifecycle state. Exactly one
// transition has side effects: PENDING -> CANCELLED refunds the snapshot
// cost and restores stock. Every other pair, including cancelling an
// already cancelled/approved/fulfilled redemption, is a plain status write.
func (s *RewardService) UpdateStatus(redemptionID uint, status models.RedemptionStatus) (*models.RewardRedemption, error) {
	var redemption models.RewardRedemption

	err := s.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Reward").First(&redemption, redemptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRedemptionNotFound
			}
			return err
		}

		if status == models.RedemptionStatusCancelled {
			// Guarded flip: the status leaves PENDING in the same statement
			// that decides whether to refund, so two concurrent cancels
			// resolve to exactly one refund.
			res := tx.Model(&models.RewardRedemption{}).
				Where("id = ? AND status = ?", redemptionID, models.RedemptionStatusPending).
				Update("status", status)
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 1 {
				_, err := s.Points.AddTx(tx, redemption.UserID, redemption.PointsSpent,
					"Refund for cancelled redemption: "+redemption.Reward.Title,
					models.TransactionTypeEarned, redemption.ID)
				if err != nil {
					return err
				}

				if redemption.Reward.StockQuantity != nil {
					res := tx.Model(&models.Reward{}).
						Where("id = ?", redemption.RewardID).
						Update("stock_quantity", gorm.Expr("stock_quantity + 1"))
					if res.Error != nil {
						return res.Error
					}
				}
			} else if err := tx.Model(&redemption).Update("status", status).Error; err != nil {
				return err
			}
		} else if err := tx.Model(&redemption).Update("status", status).Error; err != nil {
			return err
		}

		return tx.Preload("User").Preload("Reward").First(&redemption, redemption.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &redemption, nil
}

// UserRedemptions returns one user's redemptions, newest first.
func (s *RewardService) UserRedemptions(userID uint) ([]models.RewardRedemption, error) {
	var redemptions []models.RewardRedemption
	err := s.Db.Where("user_id = ?", userID).
		Preload("Reward").
		Order("created_at DESC").
		Find(&redemptions).Error
	if err != nil {
		return nil, err
	}
	return redemptions, nil
}

// AllRedemptions returns every redemption with user and reward detail,
// newest first.
func (s *RewardService) AllRedemptions() ([]models.RewardRedemption, error) {
	var redemptions []models.RewardRedemption
	err := s.Db.Preload("User").Preload("Reward").
		Order("created_at DESC").
		Find(&redemptions).Error
	if err != nil {
		return nil, err
	}
	return redemptions, nil
}

// Statistics returns catalog and redemption analytics.
func (s *RewardService) Statistics() (*RewardStatistics, error) {
	stats := &RewardStatistics{}

	if err := s.Db.Model(&models.Reward{}).Count(&stats.TotalRewards).Error; err != nil {
		return nil, err
	}
	if err := s.Db.Model(&models.Reward{}).Where("is_active = ?", true).Count(&stats.ActiveRewards).Error; err != nil {
		return nil, err
	}
	if err := s.Db.Model(&models.RewardRedemption{}).Count(&stats.TotalRedemptions).Error; err != nil {
		return nil, err
	}
	err := s.Db.Model(&models.RewardRedemption{}).
		Where("status = ?", models.RedemptionStatusPending).
		Count(&stats.PendingRedemptions).Error
	if err != nil {
		return nil, err
	}

	err = s.Db.Model(&models.Reward{}).
		Select("category, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("category").
		Scan(&stats.CategoryStats).Error
	if err != nil {
		return nil, err
	}

	err = s.Db.Model(&models.RewardRedemption{}).
		Select("status, COUNT(id) AS count, COALESCE(SUM(points_spent), 0) AS points_spent").
		Group("status").
		Scan(&stats.RedemptionStats).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// generateRedemptionCode returns the short token employees present to
// collect a reward. Uniqueness is enforced by the DB constraint.
func generateRedemptionCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
