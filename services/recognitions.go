package services

import (
	"errors"

	"kudos/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// RecognitionService creates and manages peer recognitions. A recognition
// and its points transfer are all-or-nothing: if the sender cannot cover
// the amount, the recognition row rolls back with the transfer.
type RecognitionService struct {
	Db     *gorm.DB
	Points *PointsService
}

// NewRecognitionService creates a recognition service on top of a gorm
// connection.
func NewRecognitionService(db *gorm.DB) *RecognitionService {
	return &RecognitionService{Db: db, Points: NewPointsService(db)}
}

// CreateRecognitionInput is the validated payload for Create.
type CreateRecognitionInput struct {
	RecipientID  uint
	Message      string
	PointsAmount int
	IsPrivate    bool
}

// RecognitionPage is a paginated recognition listing.
type RecognitionPage struct {
	Recognitions []models.Recognition `json:"recognitions"`
	TotalCount   int64                `json:"totalCount"`
	HasMore      bool                 `json:"hasMore"`
}

// UserRecognitionStat ranks users by recognitions sent or received.
type UserRecognitionStat struct {
	UserID      uint  `json:"userId"`
	Count       int64 `json:"count"`
	TotalPoints int64 `json:"totalPoints"`
}

// RecognitionStatistics is the analytics payload.
type RecognitionStatistics struct {
	TotalRecognitions     int64                 `json:"totalRecognitions"`
	ThisMonthRecognitions int64                 `json:"thisMonthRecognitions"`
	TopRecognizers        []UserRecognitionStat `json:"topRecognizers"`
	TopRecipients         []UserRecognitionStat `json:"topRecipients"`
}

// Create validates the request, then creates the recognition row and its
// points transfer inside one DB transaction.
func (s *RecognitionService) Create(senderID uint, input CreateRecognitionInput) (*models.Recognition, error) {
	if senderID == input.RecipientID {
		return nil, ErrSelfRecognition
	}
	if input.PointsAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	var recognition models.Recognition
	err := s.Db.Transaction(func(tx *gorm.DB) error {
		var recipient models.User
		if err := tx.Where("id = ? AND is_active = ?", input.RecipientID, true).First(&recipient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		recognition = models.Recognition{
			SenderID:     senderID,
			RecipientID:  input.RecipientID,
			Message:      input.Message,
			PointsAmount: input.PointsAmount,
			IsPrivate:    input.IsPrivate,
		}
		if err := tx.Create(&recognition).Error; err != nil {
			return err
		}

		// Transfer failure (e.g. insufficient sender balance) rolls the
		// recognition row back too.
		_, err := s.Points.TransferTx(tx, senderID, input.RecipientID, input.PointsAmount,
			"Recognition: "+input.Message, recognition.ID)
		if err != nil {
			return err
		}

		return tx.Preload("Sender").Preload("Recipient").First(&recognition, recognition.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &recognition, nil
}

// Feed returns public recognitions, newest first.
func (s *RecognitionService) Feed(limit, offset int) (*RecognitionPage, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := s.Db.Model(&models.Recognition{}).Where("is_private = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var recognitions []models.Recognition
	err := query.
		Preload("Sender").Preload("Recipient").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&recognitions).Error
	if err != nil {
		return nil, err
	}

	return &RecognitionPage{
		Recognitions: recognitions,
		TotalCount:   total,
		HasMore:      int64(offset+limit) < total,
	}, nil
}

// ForUser returns recognitions the user sent, received, or both.
func (s *RecognitionService) ForUser(userID uint, kind string, limit, offset int) (*RecognitionPage, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := s.Db.Model(&models.Recognition{})
	switch kind {
	case "sent":
		query = query.Where("sender_id = ?", userID)
	case "received":
		query = query.Where("recipient_id = ?", userID)
	default:
		query = query.Where("sender_id = ? OR recipient_id = ?", userID, userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var recognitions []models.Recognition
	err := query.
		Preload("Sender").Preload("Recipient").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&recognitions).Error
	if err != nil {
		return nil, err
	}

	return &RecognitionPage{
		Recognitions: recognitions,
		TotalCount:   total,
		HasMore:      int64(offset+limit) < total,
	}, nil
}

// Get returns one recognition. Private recognitions are visible only to
// their sender and recipient.
func (s *RecognitionService) Get(id, viewerID uint) (*models.Recognition, error) {
	var recognition models.Recognition
	err := s.Db.Preload("Sender").Preload("Recipient").First(&recognition, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecognitionNotFound
		}
		return nil, err
	}

	if recognition.IsPrivate && recognition.SenderID != viewerID && recognition.RecipientID != viewerID {
		return nil, ErrNotRecognitionOwner
	}

	return &recognition, nil
}

// UpdatePrivacy toggles a recognition's visibility. Sender only.
func (s *RecognitionService) UpdatePrivacy(id, senderID uint, isPrivate bool) (*models.Recognition, error) {
	var recognition models.Recognition
	if err := s.Db.First(&recognition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecognitionNotFound
		}
		return nil, err
	}

	if recognition.SenderID != senderID {
		return nil, ErrNotRecognitionOwner
	}

	if err := s.Db.Model(&recognition).Update("is_private", isPrivate).Error; err != nil {
		return nil, err
	}

	err := s.Db.Preload("Sender").Preload("Recipient").First(&recognition, id).Error
	if err != nil {
		return nil, err
	}
	return &recognition, nil
}

// Delete removes a recognition from the feed. Sender only. The points
// transfer is deliberately NOT reversed: ledger rows are immutable, so the
// audit trail of the transfer survives the feed entry.
func (s *RecognitionService) Delete(id, senderID uint) error {
	var recognition models.Recognition
	if err := s.Db.First(&recognition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecognitionNotFound
		}
		return err
	}

	if recognition.SenderID != senderID {
		return ErrNotRecognitionOwner
	}

	return s.Db.Delete(&recognition).Error
}

// Statistics returns recognition analytics. Scoped to one user when userID
// is non-zero.
func (s *RecognitionService) Statistics(userID uint) (*RecognitionStatistics, error) {
	stats := &RecognitionStatistics{}

	scoped := func() *gorm.DB {
		q := s.Db.Model(&models.Recognition{})
		if userID != 0 {
			q = q.Where("sender_id = ? OR recipient_id = ?", userID, userID)
		}
		return q
	}

	if err := scoped().Count(&stats.TotalRecognitions).Error; err != nil {
		return nil, err
	}
	err := scoped().
		Where("created_at >= ?", now.BeginningOfMonth()).
		Count(&stats.ThisMonthRecognitions).Error
	if err != nil {
		return nil, err
	}

	err = s.Db.Model(&models.Recognition{}).
		Select("sender_id AS user_id, COUNT(id) AS count, COALESCE(SUM(points_amount), 0) AS total_points").
		Group("sender_id").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopRecognizers).Error
	if err != nil {
		return nil, err
	}

	err = s.Db.Model(&models.Recognition{}).
		Select("recipient_id AS user_id, COUNT(id) AS count, COALESCE(SUM(points_amount), 0) AS total_points").
		Group("recipient_id").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopRecipients).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
