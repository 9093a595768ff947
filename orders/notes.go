package orders

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/models"
)

var (
	ErrNoteNotFound = errors.New("order note not found")
	// ErrNotNoteAuthor means someone other than the author tried to change a
	// note.
	ErrNotNoteAuthor = errors.New("only the note author may modify it")
)

// AddNote attaches an internal annotation to an order. Notes never change the
// order status and never trigger notifications.
func (l *Lifecycle) AddNote(ctx context.Context, orderID uint, authorID, authorName, content string) (*models.OrderNote, error) {
	var order models.Order
	if err := l.db.WithContext(ctx).Select("id").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	note := models.OrderNote{
		OrderID:    orderID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
	}
	if err := l.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote rewrites a note's content. Author-only.
func (l *Lifecycle) UpdateNote(ctx context.Context, noteID uint, authorID, content string) (*models.OrderNote, error) {
	var note models.OrderNote
	if err := l.db.WithContext(ctx).First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if note.AuthorID != authorID {
		return nil, ErrNotNoteAuthor
	}
	if err := l.db.WithContext(ctx).Model(&note).Update("content", content).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes a note. Author-only.
func (l *Lifecycle) DeleteNote(ctx context.Context, noteID uint, authorID string) error {
	var note models.OrderNote
	if err := l.db.WithContext(ctx).First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	if note.AuthorID != authorID {
		return ErrNotNoteAuthor
	}
	return l.db.WithContext(ctx).Delete(&note).Error
}

// Notes lists all annotations for an order, newest first. Visibility is
// restricted to admin routes by the HTTP layer.
func (l *Lifecycle) Notes(ctx context.Context, orderID uint) ([]models.OrderNote, error) {
	var notes []models.OrderNote
	err := l.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}
