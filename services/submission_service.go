package services

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttachmentURLTTL is how long a presigned attachment URL stays valid
const AttachmentURLTTL = 15 * time.Minute

// ObjectStore keeps submission attachments
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string, ttl time.Duration) (string, error)
}

// Attachment is a validated file to store with a submission
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
	Pages       int
}

// SubmissionService manages what students deliver for activities
type SubmissionService struct {
	db      *gorm.DB
	objects ObjectStore // nil disables attachments
}

// NewSubmissionService creates a new submission service. objects may be nil.
func NewSubmissionService(db *gorm.DB, objects ObjectStore) *SubmissionService {
	return &SubmissionService{db: db, objects: objects}
}

// SubmissionFilter narrows submission lists
type SubmissionFilter struct {
	ActivityID   uint
	EnrollmentID uint
	UserID       uint // only submissions of this student user
}

// WriteMode tells who changes a submission. Owners may not change it once graded.
type WriteMode int

const (
	StaffWrite WriteMode = iota
	OwnerWrite
)

// checkUngraded fails with ErrSubmissionGraded when owners write a graded submission.
// Callers hold the submission row lock, which grading waits on.
func checkUngraded(tx *gorm.DB, id uint, mode WriteMode) error {
	if mode != OwnerWrite {
		return nil
	}
	graded, err := countWhere(tx, &model.Grade{}, "entrega_id", id)
	if err != nil {
		return fmt.Errorf("failed to check grade of submission %d: %w", id, err)
	}
	if graded > 0 {
		return ErrSubmissionGraded
	}
	return nil
}

// checkSameGroup makes sure the enrollment and the activity belong to the same group
func checkSameGroup(tx *gorm.DB, activityID, enrollmentID uint) error {
	var a model.GradableActivity
	if err := tx.Select("id", "grupo_id").First(&a, activityID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return database.NotFound("activity", activityID)
		}
		return fmt.Errorf("failed to load activity %d: %w", activityID, err)
	}
	groupID, err := enrollmentGroup(tx, enrollmentID)
	if err != nil {
		return err
	}
	if groupID != a.GroupID {
		return fmt.Errorf("enrollment %d is not in the group of activity %d: %w", enrollmentID, activityID, database.ErrForeignKey)
	}
	return nil
}

// Create inserts a submission. An enrollment submits once per activity.
func (s *SubmissionService) Create(ctx context.Context, sub *model.Submission) error {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkSameGroup(tx, sub.ActivityID, sub.EnrollmentID); err != nil {
			return err
		}
		return storeErr("create submission", tx.Omit(clause.Associations).Create(sub).Error)
	})
}

// Get loads one submission and presigns its attachment URL
func (s *SubmissionService) Get(ctx context.Context, id uint) (*model.Submission, error) {
	var sub model.Submission
	if err := findByID(s.db.WithContext(ctx).Preload("Activity").Preload("Enrollment.Student.User"), &sub, id, "submission"); err != nil {
		return nil, err
	}
	s.presign(&sub)
	return &sub, nil
}

// List returns submissions ordered by delivery time
func (s *SubmissionService) List(ctx context.Context, filter SubmissionFilter, params ListParams) (*Page[model.Submission], error) {
	query := s.db.WithContext(ctx).Model(&model.Submission{})
	if filter.ActivityID != 0 {
		query = query.Where("actividad_id = ?", filter.ActivityID)
	}
	if filter.EnrollmentID != 0 {
		query = query.Where("inscripcion_id = ?", filter.EnrollmentID)
	}
	if filter.UserID != 0 {
		query = query.Where("inscripcion_id IN (?)", userEnrollments(s.db.WithContext(ctx), filter.UserID))
	}
	page, err := paginate[model.Submission](query, params, "fecha_entrega DESC")
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		s.presign(&page.Items[i])
	}
	return page, nil
}

// BelongsToUser reports whether the submission was delivered by the user's student profile
func (s *SubmissionService) BelongsToUser(ctx context.Context, id, userID uint) (bool, error) {
	db := s.db.WithContext(ctx)
	var n int64
	err := db.Model(&model.Submission{}).
		Where("id = ? AND inscripcion_id IN (?)", id, userEnrollments(db, userID)).
		Count(&n).Error
	if err != nil {
		return false, storeErr("check submission owner", err)
	}
	return n > 0, nil
}

// Update applies changes to a submission. Changed references must stay in one group.
func (s *SubmissionService) Update(ctx context.Context, id uint, mode WriteMode, apply func(*model.Submission) error) (*model.Submission, error) {
	var sub model.Submission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &sub, id, "submission"); err != nil {
			return err
		}
		if err := checkUngraded(tx, id, mode); err != nil {
			return err
		}
		activityBefore, enrollmentBefore := sub.ActivityID, sub.EnrollmentID
		if err := apply(&sub); err != nil {
			return err
		}
		sub.ID = id
		if sub.ActivityID != activityBefore || sub.EnrollmentID != enrollmentBefore {
			if err := checkSameGroup(tx, sub.ActivityID, sub.EnrollmentID); err != nil {
				return err
			}
		}
		sub.Activity, sub.Enrollment = nil, nil
		return storeErr("update submission", tx.Omit(clause.Associations).Save(&sub).Error)
	})
	if err != nil {
		return nil, err
	}
	s.presign(&sub)
	return &sub, nil
}

// Delete removes a submission with its grade and its stored attachment
func (s *SubmissionService) Delete(ctx context.Context, id uint, mode WriteMode) error {
	var key *string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub model.Submission
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &sub, id, "submission"); err != nil {
			return err
		}
		if err := checkUngraded(tx, id, mode); err != nil {
			return err
		}
		key = sub.AttachmentKey
		return deleteByID(tx, &model.Submission{}, id, "submission")
	})
	if err != nil {
		return err
	}
	if key != nil && s.objects != nil {
		if err := s.objects.Delete(ctx, *key); err != nil {
			log.Printf("failed to delete attachment %s of submission %d: %v", *key, id, err)
		}
	}
	return nil
}

// Attach stores a file for a submission, replacing any previous attachment.
// The object is uploaded before the row changes; a failed row update removes it again.
func (s *SubmissionService) Attach(ctx context.Context, id uint, mode WriteMode, file Attachment) (*model.Submission, error) {
	if s.objects == nil {
		return nil, ErrAttachmentsDisabled
	}

	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Submission{}, id, "submission"); err != nil {
		return nil, err
	}

	key := attachmentKey(id, file.FileName)
	if err := s.objects.Put(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	var sub model.Submission
	var previous *string
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &sub, id, "submission"); err != nil {
			return err
		}
		if err := checkUngraded(tx, id, mode); err != nil {
			return err
		}
		previous = sub.AttachmentKey
		name := file.FileName
		pages := file.Pages
		sub.AttachmentKey = &key
		sub.AttachmentName = &name
		sub.AttachmentPages = &pages
		return storeErr("attach file", tx.Model(&sub).Select("archivo_key", "archivo_nombre", "archivo_paginas", "updated_at").Updates(&sub).Error)
	})
	if err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			log.Printf("failed to remove orphaned attachment %s: %v", key, delErr)
		}
		return nil, err
	}

	if previous != nil && *previous != key {
		if err := s.objects.Delete(ctx, *previous); err != nil {
			log.Printf("failed to delete replaced attachment %s: %v", *previous, err)
		}
	}

	s.presign(&sub)
	return &sub, nil
}

// attachmentKey builds a unique object key that keeps the file extension
func attachmentKey(submissionID uint, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		ext = ".pdf"
	}
	return fmt.Sprintf("submissions/%d/%s%s", submissionID, uuid.New().String(), ext)
}

func (s *SubmissionService) presign(sub *model.Submission) {
	if s.objects == nil || sub.AttachmentKey == nil {
		return
	}
	url, err := s.objects.URL(*sub.AttachmentKey, AttachmentURLTTL)
	if err != nil {
		log.Printf("failed to presign attachment of submission %d: %v", sub.ID, err)
		return
	}
	sub.AttachmentURL = url
}

// Grade returns the grade of a submission
func (s *SubmissionService) Grade(ctx context.Context, id uint) (*model.Grade, error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Submission{}, id, "submission"); err != nil {
		return nil, err
	}
	var g model.Grade
	if err := db.Where("entrega_id = ?", id).First(&g).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, database.NotFound("grade of submission", id)
		}
		return nil, storeErr("load grade", err)
	}
	return &g, nil
}
