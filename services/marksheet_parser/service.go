// Package marksheet_parser extracts education details from an uploaded
// marksheet image so the applicant can review them before saving.
package marksheet_parser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"admission-portal/apperrors"
	"admission-portal/logger"
	"admission-portal/models/marksheet"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 10 * 1024 * 1024

var (
	ErrInvalidImageType = apperrors.NewValidation("invalid_file_type", "Invalid file type. Only JPEG, JPG, PNG, and WebP files are allowed")
	ErrImageTooLarge    = apperrors.NewValidation("file_too_large", "File size too large. Maximum size is 10MB")
	ErrParseFailed      = apperrors.New(apperrors.Upstream, "marksheet_parse_failed", "Failed to parse marksheet")
)

// Upload is an uploaded marksheet image.
type Upload struct {
	FileName string
	MimeType string
	Data     []byte
}

type Service struct {
	db        *gorm.DB
	extractor Extractor
	now       func() time.Time
}

// NewService builds the parser. A nil extractor makes every Parse call fail
// with ErrParseFailed after recording the request.
func NewService(db *gorm.DB, extractor Extractor) *Service {
	return &Service{db: db, extractor: extractor, now: time.Now}
}

// Parse records the upload, runs extraction and stores the outcome on the
// request row.
func (s *Service) Parse(ctx context.Context, userID uint, upload Upload) (*marksheet.Result, error) {
	startTime := s.now()

	if !isValidImageType(upload.MimeType) {
		return nil, ErrInvalidImageType
	}
	if len(upload.Data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	db := s.db.WithContext(ctx)
	hash := sha256.Sum256(upload.Data)
	request := &marksheet.ParseRequest{
		RequestID:        uuid.NewString(),
		UserID:           userID,
		OriginalFileName: upload.FileName,
		FileHash:         hex.EncodeToString(hash[:]),
		FileSize:         int64(len(upload.Data)),
		MimeType:         upload.MimeType,
	}
	if err := db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create parse request: %w", err)
	}

	result, err := s.extract(ctx, upload)
	processingTime := s.now().Sub(startTime).Milliseconds()
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to parse marksheet for request %s", request.RequestID), err)
		if markErr := request.MarkAsFailed(db, err.Error(), processingTime); markErr != nil {
			logger.Error(fmt.Sprintf("Failed to mark request %s as failed", request.RequestID), markErr)
		}
		return nil, ErrParseFailed
	}

	result.RequestID = request.RequestID
	result.ProcessingTimeMs = processingTime
	if err := request.MarkAsSuccess(db, result); err != nil {
		logger.Error(fmt.Sprintf("Failed to save result for request %s", request.RequestID), err)
	}

	logger.Success(fmt.Sprintf("Marksheet parsed in %dms, Request ID: %s", processingTime, request.RequestID))
	return result, nil
}

func (s *Service) extract(ctx context.Context, upload Upload) (*marksheet.Result, error) {
	if s.extractor == nil {
		return nil, ErrParserDisabled
	}

	text, err := s.extractor.Extract(ctx, upload.Data, upload.MimeType)
	if err != nil {
		return nil, err
	}

	jsonText := extractJSONFromMarkdown(text)
	var parsed marksheet.Result
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}
	if parsed.TotalMarks < 0 || parsed.ObtainedMarks < 0 || parsed.ObtainedMarks > parsed.TotalMarks {
		return nil, fmt.Errorf("implausible marks %d/%d", parsed.ObtainedMarks, parsed.TotalMarks)
	}
	return &parsed, nil
}

// Request returns one of the caller's parse requests.
func (s *Service) Request(ctx context.Context, userID uint, requestID string) (*marksheet.ParseRequest, error) {
	var request marksheet.ParseRequest
	err := s.db.WithContext(ctx).Where("request_id = ? AND user_id = ?", requestID, userID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load parse request: %w", err)
	}
	return &request, nil
}

// extractJSONFromMarkdown strips a surrounding markdown code fence.
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			return strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return text
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
