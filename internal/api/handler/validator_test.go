package handler

import (
	"strings"
	"testing"
)

func TestFormValidator_ValidForms(t *testing.T) {
	v := NewFormValidator()

	forms := []any{
		&loginForm{Email: "a@example.com", Password: "anything"},
		&registerForm{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "Sup3rSecret!pass"},
		&classificationForm{Name: "SUV"},
		&vehicleForm{
			Make: "Ford", Model: "Escape", Year: 2020, Description: "d",
			Image: "/img.png", Thumbnail: "/t.png", Price: 100, Color: "Blue",
			ClassificationID: "cls_1",
		},
	}
	for _, form := range forms {
		if errs := v.Validate(form); errs != nil {
			t.Fatalf("%T: unexpected errors %v", form, errs)
		}
	}
}

func TestFormValidator_KeysUseFormTags(t *testing.T) {
	v := NewFormValidator()

	errs := v.Validate(&loginForm{})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if _, ok := errs["account_email"]; !ok {
		t.Fatalf("email error not keyed by form tag: %v", errs)
	}
	if _, ok := errs["account_password"]; !ok {
		t.Fatalf("password error not keyed by form tag: %v", errs)
	}
}

func TestFormValidator_PasswordRule(t *testing.T) {
	v := NewFormValidator()

	cases := map[string]bool{
		"Sup3rSecret!pass": true,
		"alllowercase!888": false, // no uppercase
		"NoDigitsHere!!!!": false,
		"NoSymbols1111111": false,
		"Shor7!":           false, // under min length
	}
	for password, valid := range cases {
		form := &registerForm{FirstName: "A", LastName: "B", Email: "a@example.com", Password: password}
		errs := v.Validate(form)
		if valid && errs != nil {
			t.Fatalf("%q rejected: %v", password, errs)
		}
		if !valid && errs["account_password"] == "" {
			t.Fatalf("%q accepted", password)
		}
	}
}

func TestFormValidator_VehicleYearBounds(t *testing.T) {
	v := NewFormValidator()

	form := &vehicleForm{
		Make: "Ford", Model: "T", Year: 1885, Description: "d",
		Image: "/img.png", Thumbnail: "/t.png", Price: 100, Color: "Black",
		ClassificationID: "cls_1",
	}
	errs := v.Validate(form)
	if msg := errs["inv_year"]; !strings.Contains(msg, "1900") {
		t.Fatalf("year bound not enforced: %v", errs)
	}
}

func TestFormValidator_ClassificationAlphanum(t *testing.T) {
	v := NewFormValidator()

	if errs := v.Validate(&classificationForm{Name: "Sport Utility"}); errs["classification_name"] == "" {
		t.Fatalf("space accepted in classification name")
	}
	if errs := v.Validate(&classificationForm{Name: "SUV4x4"}); errs != nil {
		t.Fatalf("alphanumeric name rejected: %v", errs)
	}
}
