package utils

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"admission-portal/constants"
	"admission-portal/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

const maskedValue = "********"

// sensitiveKeys are JSON keys whose values never reach the request log.
var sensitiveKeys = map[string]bool{
	"password":       true,
	"password2":      true,
	"new_password":   true,
	"otp":            true,
	"refresh":        true,
	"access":         true,
	"token":          true,
	"aadhaar_number": true,
}

// CalculateAge returns the age in years, months and days as of today.
func CalculateAge(dob time.Time) (int, int, int) {
	return CalculateAgeAt(dob, time.Now())
}

// CalculateAgeAt returns the age in years, months and days as of currentTime.
func CalculateAgeAt(dob, currentTime time.Time) (int, int, int) {
	years := currentTime.Year() - dob.Year()
	months := int(currentTime.Month()) - int(dob.Month())
	days := currentTime.Day() - dob.Day()

	// Adjust for negative days (if birthday day hasn't occurred this month)
	if days < 0 {
		previousMonth := now.With(currentTime).BeginningOfMonth().AddDate(0, 0, -1) // Get last day of the previous month
		days += previousMonth.Day()
		months--
	}

	// Adjust for negative months (if birthday hasn't occurred this year)
	if months < 0 {
		years--
		months += 12
	}

	return years, months, days
}

// ExtractBearerToken reads the token from the Authorization header, falling
// back to the access cookie.
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Cookies(constants.AccessCookie); token != "" {
			return token, nil
		}
		return "", errors.New("authorization token missing")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}
	return tokenParts[1], nil
}

// MaskSensitiveJSON masks the values of sensitive keys at any depth. Bodies
// that are not JSON are returned unchanged.
func MaskSensitiveJSON(body string) string {
	if body == "" {
		return body
	}
	var payload interface{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return body
	}
	masked, err := json.Marshal(maskValue(payload))
	if err != nil {
		return body
	}
	return string(masked)
}

func maskValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if sensitiveKeys[strings.ToLower(k)] {
				val[k] = maskedValue
				continue
			}
			val[k] = maskValue(inner)
		}
		return val
	case []interface{}:
		for i, inner := range val {
			val[i] = maskValue(inner)
		}
		return val
	default:
		return v
	}
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			// Add file field information without content
			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return MaskSensitiveJSON(string(jsonBytes))
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return MaskSensitiveJSON(body)
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging.
// Secrets in bodies are masked and the Authorization header is dropped.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := MaskSensitiveJSON(string(append([]byte(nil), c.Response().Body()...)))

	var requestHeaders strings.Builder
	c.Request().Header.VisitAll(func(key, value []byte) {
		k := string(key)
		if strings.EqualFold(k, fiber.HeaderAuthorization) || strings.EqualFold(k, fiber.HeaderCookie) {
			return
		}
		requestHeaders.WriteString(k + ": " + string(value) + "\r\n")
	})

	var responseHeaders strings.Builder
	c.Response().Header.VisitAll(func(key, value []byte) {
		k := string(key)
		if strings.EqualFold(k, fiber.HeaderSetCookie) {
			return
		}
		responseHeaders.WriteString(k + ": " + string(value) + "\r\n")
	})

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  requestHeaders.String(),
		ResponseHeaders: responseHeaders.String(),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
