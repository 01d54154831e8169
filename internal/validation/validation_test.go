package validation

import (
	"strings"
	"testing"
)

// --- ValidateUTF8 Tests ---

func TestValidateUTF8_Valid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"ascii", "hello world"},
		{"empty", ""},
		{"unicode", "Hello, 世界"},
		{"emoji", "Hello 👋🏻"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUTF8("field", tt.value)
			if err != nil {
				t.Errorf("ValidateUTF8(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestValidateUTF8_Invalid(t *testing.T) {
	// Invalid UTF-8 byte sequence
	invalidUTF8 := string([]byte{0xff, 0xfe})

	err := ValidateUTF8("content", invalidUTF8)
	if err == nil {
		t.Error("ValidateUTF8(invalid) = nil, want error")
	}
	if err != nil && err.Field != "content" {
		t.Errorf("error.Field = %q, want %q", err.Field, "content")
	}
}

// --- ValidateNoNullBytes Tests ---

func TestValidateNoNullBytes_Clean(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"normal", "hello world"},
		{"empty", ""},
		{"unicode", "Hello, 世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNoNullBytes("field", tt.value)
			if err != nil {
				t.Errorf("ValidateNoNullBytes(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestValidateNoNullBytes_WithNull(t *testing.T) {
	err := ValidateNoNullBytes("content", "hello\x00world")
	if err == nil {
		t.Error("ValidateNoNullBytes(with null) = nil, want error")
	}
	if err != nil && err.Field != "content" {
		t.Errorf("error.Field = %q, want %q", err.Field, "content")
	}
}

// --- ValidateMaxLength Tests ---

func TestValidateMaxLength_Within(t *testing.T) {
	value := strings.Repeat("a", 100)
	err := ValidateMaxLength("content", value, 10000)
	if err != nil {
		t.Errorf("ValidateMaxLength(100 chars, max 10000) = %v, want nil", err)
	}
}

func TestValidateMaxLength_AtLimit(t *testing.T) {
	value := strings.Repeat("a", 10000)
	err := ValidateMaxLength("content", value, 10000)
	if err != nil {
		t.Errorf("ValidateMaxLength(10000 chars, max 10000) = %v, want nil", err)
	}
}

func TestValidateMaxLength_Exceeds(t *testing.T) {
	value := strings.Repeat("a", 10001)
	err := ValidateMaxLength("content", value, 10000)
	if err == nil {
		t.Error("ValidateMaxLength(10001 chars, max 10000) = nil, want error")
	}
	if err != nil && err.Field != "content" {
		t.Errorf("error.Field = %q, want %q", err.Field, "content")
	}
}

func TestValidateMaxLength_MultibyteRunes(t *testing.T) {
	// 10000 emoji characters (each 4 bytes in UTF-8, but counts as 1 rune)
	value := strings.Repeat("👋", 10000)
	err := ValidateMaxLength("content", value, 10000)
	if err != nil {
		t.Errorf("ValidateMaxLength(10000 emoji, max 10000) = %v, want nil (counts runes)", err)
	}
}

func TestValidateMaxLength_MultibyteRunes_Exceeds(t *testing.T) {
	// 10001 emoji characters (exceeds 10000 rune limit)
	value := strings.Repeat("👋", 10001)
	err := ValidateMaxLength("content", value, 10000)
	if err == nil {
		t.Error("ValidateMaxLength(10001 emoji, max 10000) = nil, want error")
	}
}

// --- ValidateULID Tests ---

func TestValidateULID_Valid(t *testing.T) {
	// Valid ULIDs use Crockford Base32 (excludes I, L, O, U)
	validULIDs := []string{
		"01ARYZ6S41TSV4RRFFQ69G5FAV",
		"01HGW2N5E56F2ZXQWRR78YQRZ8",
		"00000000000000000000000000", // minimum ULID
		"7ZZZZZZZZZZZZZZZZZZZZZZZZZ", // maximum ULID
	}

	for _, ulid := range validULIDs {
		t.Run(ulid, func(t *testing.T) {
			err := ValidateULID("id", ulid)
			if err != nil {
				t.Errorf("ValidateULID(%q) = %v, want nil", ulid, err)
			}
		})
	}
}

func TestValidateULID_Invalid_TooShort(t *testing.T) {
	err := ValidateULID("id", "01ARYZ6S41")
	if err == nil {
		t.Error("ValidateULID(too short) = nil, want error")
	}
}

func TestValidateULID_Invalid_TooLong(t *testing.T) {
	err := ValidateULID("id", "01ARYZ6S41TSV4RRFFQ69G5FAVX")
	if err == nil {
		t.Error("ValidateULID(too long) = nil, want error")
	}
}

func TestValidateULID_Invalid_BadChar(t *testing.T) {
	// I, L, O, U are invalid in Crockford Base32
	invalidULIDs := []string{
		"01ARYZ6S41TSV4RRFFQ69GILOU", // contains I, L, O, U
		"01ARYZ6S41TSV4RRFFQ69G5FAi", // lowercase i
		"01ARYZ6S41TSV4RRFFQ69G5FAl", // lowercase l
		"01ARYZ6S41TSV4RRFFQ69G5FAo", // lowercase o
		"01ARYZ6S41TSV4RRFFQ69G5FAu", // lowercase u
	}

	for _, ulid := range invalidULIDs {
		t.Run(ulid, func(t *testing.T) {
			err := ValidateULID("id", ulid)
			if err == nil {
				t.Errorf("ValidateULID(%q) = nil, want error", ulid)
			}
		})
	}
}

func TestValidateULID_Invalid_Empty(t *testing.T) {
	err := ValidateULID("id", "")
	if err == nil {
		t.Error("ValidateULID(empty) = nil, want error")
	}
}

// --- ValidateRequired Tests ---

func TestValidateRequired_NonEmpty(t *testing.T) {
	err := ValidateRequired("field", "value")
	if err != nil {
		t.Errorf("ValidateRequired(value) = %v, want nil", err)
	}
}

func TestValidateRequired_Empty(t *testing.T) {
	err := ValidateRequired("gameTitle", "")
	if err == nil {
		t.Error("ValidateRequired(empty) = nil, want error")
	}
	if err != nil && err.Field != "gameTitle" {
		t.Errorf("error.Field = %q, want %q", err.Field, "gameTitle")
	}
	if err != nil && err.Code != CodeMissingField {
		t.Errorf("error.Code = %q, want %q", err.Code, CodeMissingField)
	}
}

func TestValidateRequired_WhitespaceOnly(t *testing.T) {
	tests := []string{" ", "   ", "\t", "\n", "  \t\n  "}
	for _, value := range tests {
		t.Run("whitespace", func(t *testing.T) {
			err := ValidateRequired("field", value)
			if err == nil {
				t.Errorf("ValidateRequired(%q) = nil, want error", value)
			}
		})
	}
}

// --- Collector Tests ---

func TestCollector_AccumulatesErrors(t *testing.T) {
	c := &Collector{}
	c.Add(&ValidationError{Field: "field1", Message: "error1"})
	c.Add(&ValidationError{Field: "field2", Message: "error2"})
	c.Add(&ValidationError{Field: "field3", Message: "error3"})

	errors := c.Errors()
	if len(errors) != 3 {
		t.Errorf("len(Errors()) = %d, want 3", len(errors))
	}
}

func TestCollector_IgnoresNil(t *testing.T) {
	c := &Collector{}
	c.Add(nil)
	c.Add(&ValidationError{Field: "field", Message: "error"})
	c.Add(nil)

	errors := c.Errors()
	if len(errors) != 1 {
		t.Errorf("len(Errors()) = %d, want 1 (nil should be ignored)", len(errors))
	}
}

func TestCollector_HasErrors_Empty(t *testing.T) {
	c := &Collector{}
	if c.HasErrors() {
		t.Error("HasErrors() = true, want false for empty collector")
	}
}

func TestCollector_HasErrors_WithErrors(t *testing.T) {
	c := &Collector{}
	c.Add(&ValidationError{Field: "field", Message: "error"})
	if !c.HasErrors() {
		t.Error("HasErrors() = false, want true for collector with errors")
	}
}

func TestCollector_Errors_ReturnsSlice(t *testing.T) {
	c := &Collector{}
	c.Add(&ValidationError{Field: "f1", Message: "m1"})
	c.Add(&ValidationError{Field: "f2", Message: "m2"})

	errors := c.Errors()
	if errors[0].Field != "f1" || errors[0].Message != "m1" {
		t.Errorf("errors[0] = %+v, want {Field:f1, Message:m1}", errors[0])
	}
	if errors[1].Field != "f2" || errors[1].Message != "m2" {
		t.Errorf("errors[1] = %+v, want {Field:f2, Message:m2}", errors[1])
	}
}

// --- ValidateConsent Tests ---

func TestValidateConsent_Checked(t *testing.T) {
	if err := ValidateConsent("dataUsage", true); err != nil {
		t.Errorf("ValidateConsent(true) = %v, want nil", err)
	}
}

func TestValidateConsent_Unchecked(t *testing.T) {
	err := ValidateConsent("dataUsage", false)
	if err == nil {
		t.Fatal("ValidateConsent(false) = nil, want error")
	}
	if err.Field != "dataUsage" {
		t.Errorf("error.Field = %q, want %q", err.Field, "dataUsage")
	}
	if err.Code != CodeConsentRequired {
		t.Errorf("error.Code = %q, want %q", err.Code, CodeConsentRequired)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := MissingField("genre")
	if got := err.Error(); got != "genre is required" {
		t.Errorf("Error() = %q, want %q", got, "genre is required")
	}
}

func TestValidateMaxLength_Code(t *testing.T) {
	err := ValidateMaxLength("lore", strings.Repeat("a", 11), 10)
	if err == nil || err.Code != CodeTooLong {
		t.Errorf("ValidateMaxLength code = %+v, want %q", err, CodeTooLong)
	}
}
