package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/codebykhassan/contact-management-app/internal/model"
	"github.com/codebykhassan/contact-management-app/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrContactNotFound   = errors.New("contact not found")
	ErrForbidden         = errors.New("you can only access your own contacts")
	ErrInvalidFileFormat = errors.New("invalid file format. only .jpg, .jpeg, .png, .gif are allowed")
	ErrFileSizeExceeded  = errors.New("file size exceeds limit")
)

const MaxPhotoSize = 5 * 1024 * 1024 // 5MB

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Allowed sortBy values mapped to their column names. Anything else falls
// back to created_at.
var sortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"createdAt":  "created_at",
	"created_at": "created_at",
}

// ContactService defines operations for contacts
type ContactService interface {
	Create(ctx context.Context, ownerID int, req model.CreateContactRequest, photo *multipart.FileHeader) (*model.Contact, error)
	GetByID(ctx context.Context, contactID int64, requesterID int, requesterRole string) (*model.Contact, error)
	List(ctx context.Context, requesterID int, requesterRole string, params model.ContactListParams) (*model.ContactPage, error)
	Update(ctx context.Context, contactID int64, requesterID int, requesterRole string, req model.UpdateContactRequest, photo *multipart.FileHeader) (*model.Contact, error)
	Delete(ctx context.Context, contactID int64, requesterID int, requesterRole string) error
}

type contactService struct {
	repo       repository.ContactRepository
	uploadsDir string
}

// NewContactService creates a new ContactService
func NewContactService(repo repository.ContactRepository, uploadsDir string) ContactService {
	return &contactService{repo: repo, uploadsDir: uploadsDir}
}

// canAccess is the single authorization rule for contact resources: admins
// bypass ownership, everyone else must own the record.
func canAccess(requesterID int, requesterRole string, c *model.Contact) bool {
	return requesterRole == model.RoleAdmin || c.UserID == requesterID
}

func (s *contactService) Create(ctx context.Context, ownerID int, req model.CreateContactRequest, photo *multipart.FileHeader) (*model.Contact, error) {
	contact := &model.Contact{
		UserID: ownerID, // Owner is always the authenticated caller
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
	}

	var savedPath string
	if photo != nil {
		photoPath, err := s.savePhoto(photo)
		if err != nil {
			return nil, err
		}
		contact.Photo = &photoPath
		savedPath = photoPath
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		if savedPath != "" {
			s.removePhoto(savedPath) // Attempt to clean up
		}
		return nil, fmt.Errorf("failed to create contact in repo: %w", err)
	}
	return contact, nil
}

func (s *contactService) GetByID(ctx context.Context, contactID int64, requesterID int, requesterRole string) (*model.Contact, error) {
	contact, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact by ID: %w", err)
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}

	if !canAccess(requesterID, requesterRole, contact) {
		return nil, ErrForbidden
	}
	return contact, nil
}

func (s *contactService) List(ctx context.Context, requesterID int, requesterRole string, params model.ContactListParams) (*model.ContactPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	sortBy, ok := sortColumns[params.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := strings.ToUpper(params.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	filter := model.ContactFilter{
		Search:    params.Search,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	// Non-admins only ever see their own contacts
	if requesterRole != model.RoleAdmin {
		filter.OwnerID = &requesterID
	}

	contacts, total, err := s.repo.FindPage(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts from repo: %w", err)
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}

	return &model.ContactPage{
		Data:       contacts,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *contactService) Update(ctx context.Context, contactID int64, requesterID int, requesterRole string, req model.UpdateContactRequest, photo *multipart.FileHeader) (*model.Contact, error) {
	existing, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact for update: %w", err)
	}
	if existing == nil {
		return nil, ErrContactNotFound
	}
	if !canAccess(requesterID, requesterRole, existing) {
		return nil, ErrForbidden
	}

	// Apply partial updates; id and owner are never touched
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}

	var savedPath string
	if photo != nil {
		photoPath, err := s.savePhoto(photo)
		if err != nil {
			return nil, err
		}
		existing.Photo = &photoPath
		savedPath = photoPath
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if savedPath != "" {
			s.removePhoto(savedPath)
		}
		return nil, fmt.Errorf("failed to update contact in repo: %w", err)
	}
	return existing, nil
}

func (s *contactService) Delete(ctx context.Context, contactID int64, requesterID int, requesterRole string) error {
	existing, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		return fmt.Errorf("failed to find contact for deletion: %w", err)
	}
	if existing == nil {
		return ErrContactNotFound
	}
	if !canAccess(requesterID, requesterRole, existing) {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, contactID); err != nil {
		return fmt.Errorf("failed to delete contact in repo: %w", err)
	}
	return nil
}

// savePhoto validates an uploaded image and writes it under the uploads
// directory with a random name. Returns the public /uploads/... path.
func (s *contactService) savePhoto(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxPhotoSize {
		return "", ErrFileSizeExceeded
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
	if !allowedExts[ext] {
		return "", ErrInvalidFileFormat
	}

	if err := os.MkdirAll(s.uploadsDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := uuid.NewString() + ext
	filePath := filepath.Join(s.uploadsDir, fileName)

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file on server: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/" + fileName, nil
}

// removePhoto deletes a stored photo given its public /uploads/... path.
func (s *contactService) removePhoto(publicPath string) {
	fileName := filepath.Base(publicPath)
	os.Remove(filepath.Join(s.uploadsDir, fileName))
}
