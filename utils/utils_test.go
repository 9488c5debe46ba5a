package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"admission-portal/apperrors"

	"github.com/gofiber/fiber/v2"
)

func TestCalculateAgeAt(t *testing.T) {
	tests := []struct {
		name                string
		dob, at             time.Time
		years, months, days int
	}{
		{
			name:  "birthday today",
			dob:   time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			years: 20,
		},
		{
			name:   "day before birthday",
			dob:    time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC),
			at:     time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			years:  19,
			months: 11,
			days:   30,
		},
		{
			name:   "leap february borrow",
			dob:    time.Date(2000, 1, 20, 0, 0, 0, 0, time.UTC),
			at:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			years:  24,
			months: 1,
			days:   14,
		},
	}

	for _, tt := range tests {
		y, m, d := CalculateAgeAt(tt.dob, tt.at)
		if y != tt.years || m != tt.months || d != tt.days {
			t.Errorf("%s: got %d/%d/%d, want %d/%d/%d", tt.name, y, m, d, tt.years, tt.months, tt.days)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	attrs := PasswordAttributes{Username: "alice", FirstName: "Alice", LastName: "Smith", Email: "alice@x.com"}

	tests := []struct {
		password string
		ok       bool
	}{
		{"Str0ngP@ss!", true},
		{"An0ther$ecret", true},
		{"short1!", false},
		{"1234567890", false},
		{"password123", false},
		{"alice2024!!", false},
	}
	for _, tt := range tests {
		err := ValidatePassword(tt.password, attrs)
		if tt.ok && err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", tt.password, err)
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("ValidatePassword(%q) = nil, want error", tt.password)
				continue
			}
			if !errors.Is(err, apperrors.ErrWeakPassword) {
				t.Errorf("ValidatePassword(%q) = %v, want weak_password", tt.password, err)
			}
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ngP@ss!", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Str0ngP@ss!" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "Str0ngP@ss!") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected mismatch")
	}
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"required,phone"`
		OTP   string `json:"otp" validate:"required,len=6,numeric"`
	}

	if err := ValidateStruct(request{Email: "alice@x.com", Phone: "5551234", OTP: "012345"}); err != nil {
		t.Fatalf("valid request: %v", err)
	}

	err := ValidateStruct(request{Email: "nope", Phone: "12", OTP: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.KindOf(err) != apperrors.Validation {
		t.Fatalf("kind = %v, want validation", apperrors.KindOf(err))
	}
	want := "invalid email format, phone must be a phone number of 7 to 15 digits, otp is required"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	for _, p := range []string{"5551234", "+919876543210", "01712345678"} {
		if !ValidatePhoneNumber(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	for _, p := range []string{"", "123", "555-1234", "+12345678901234567"} {
		if ValidatePhoneNumber(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestMaskSensitiveJSON(t *testing.T) {
	body := `{"username":"alice","password":"Str0ngP@ss!","data":{"otp":"123456","tokens":[{"refresh":"abc"}]}}`
	masked := MaskSensitiveJSON(body)

	var got map[string]interface{}
	if err := json.Unmarshal([]byte(masked), &got); err != nil {
		t.Fatalf("unmarshal masked: %v", err)
	}
	if got["username"] != "alice" {
		t.Fatalf("username changed: %v", got["username"])
	}
	if got["password"] != maskedValue {
		t.Fatalf("password not masked: %v", got["password"])
	}
	data := got["data"].(map[string]interface{})
	if data["otp"] != maskedValue {
		t.Fatalf("otp not masked: %v", data["otp"])
	}
	tokens := data["tokens"].([]interface{})
	if tokens[0].(map[string]interface{})["refresh"] != maskedValue {
		t.Fatal("nested refresh not masked")
	}

	if MaskSensitiveJSON("plain text") != "plain text" {
		t.Fatal("non-JSON body must pass through")
	}
}

func TestExtractBearerToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		token, err := ExtractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}
		return c.SendString(token)
	})

	tests := []struct {
		header, cookie string
		status         int
	}{
		{"Bearer abc", "", fiber.StatusOK},
		{"", "xyz", fiber.StatusOK},
		{"Token abc", "", fiber.StatusUnauthorized},
		{"", "", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if tt.cookie != "" {
			req.Header.Set("Cookie", "access="+tt.cookie)
		}
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("header=%q cookie=%q: status %d, want %d", tt.header, tt.cookie, resp.StatusCode, tt.status)
		}
	}
}
