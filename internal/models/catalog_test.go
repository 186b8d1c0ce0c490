package models

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateCategoryRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateCategoryRequest
		wantField string
	}{
		{"valid", CreateCategoryRequest{Title: "Pizza", Description: "Wood-fired"}, ""},
		{"description optional", CreateCategoryRequest{Title: "Pizza"}, ""},
		{"title at limit", CreateCategoryRequest{Title: strings.Repeat("a", 55)}, ""},
		{"missing title", CreateCategoryRequest{Description: "d"}, "title"},
		{"title too long", CreateCategoryRequest{Title: strings.Repeat("a", 56)}, "title"},
		{"description too long", CreateCategoryRequest{Title: "Pizza", Description: strings.Repeat("a", 256)}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			checkValidation(t, err, tt.wantField)
		})
	}
}

func TestUpdateCategoryRequest_Validate(t *testing.T) {
	empty := ""
	long := strings.Repeat("a", 56)
	negative := -1
	zero := 0

	tests := []struct {
		name      string
		req       UpdateCategoryRequest
		wantField string
	}{
		{"all nil is valid", UpdateCategoryRequest{}, ""},
		{"sort order zero", UpdateCategoryRequest{SortOrder: &zero}, ""},
		{"empty title supplied", UpdateCategoryRequest{Title: &empty}, "title"},
		{"title too long", UpdateCategoryRequest{Title: &long}, "title"},
		{"negative sort order", UpdateCategoryRequest{SortOrder: &negative}, "sort_order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			checkValidation(t, err, tt.wantField)
		})
	}
}

func TestCreateMenuRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateMenuRequest
		wantField string
	}{
		{"valid", CreateMenuRequest{Title: "Margherita", Description: "Classic", Price: 10}, ""},
		{"missing description", CreateMenuRequest{Title: "Margherita", Price: 10}, "description"},
		{"zero price", CreateMenuRequest{Title: "Margherita", Description: "d", Price: 0}, "price"},
		{"negative price", CreateMenuRequest{Title: "Margherita", Description: "d", Price: -2}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			checkValidation(t, err, tt.wantField)
		})
	}
}

func TestUpdateMenuRequest_Validate(t *testing.T) {
	badPrice := 0.0
	goodPrice := 12.5

	tests := []struct {
		name      string
		req       UpdateMenuRequest
		wantField string
	}{
		{"all nil is valid", UpdateMenuRequest{}, ""},
		{"price only", UpdateMenuRequest{Price: &goodPrice}, ""},
		{"zero price supplied", UpdateMenuRequest{Price: &badPrice}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			checkValidation(t, err, tt.wantField)
		})
	}
}

func TestAddItemRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       AddItemRequest
		wantField string
	}{
		{"valid", AddItemRequest{RestaurantID: "r1", MenuID: "m1", Title: "Margherita", Quantity: 2, Price: 10}, ""},
		{"zero quantity is legal", AddItemRequest{RestaurantID: "r1", MenuID: "m1", Title: "Margherita", Quantity: 0, Price: 10}, ""},
		{"missing restaurant", AddItemRequest{MenuID: "m1", Title: "t", Price: 10}, "restaurant_id"},
		{"missing menu", AddItemRequest{RestaurantID: "r1", Title: "t", Price: 10}, "menu_id"},
		{"negative price", AddItemRequest{RestaurantID: "r1", MenuID: "m1", Title: "t", Price: -1}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			checkValidation(t, err, tt.wantField)
		})
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pizza", "Pizza"},
		{"<b>Pizza</b>", "Pizza"},
		{"a <i>b</i> c", "a b c"},
		{"<script>alert(1)</script>", "alert(1)"},
		{"dangling <open", "dangling"},
		{"  padded  ", "  padded  "}, // no markup, left untouched
		{"<>", ""},
	}

	for _, tt := range tests {
		if got := StripMarkup(tt.in); got != tt.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFoundError{Resource: "category", ID: "c1"}) {
		t.Error("IsNotFound(NotFoundError) = false")
	}
	if !IsNotFound(errors.Join(errors.New("outer"), NotFoundError{Resource: "basket"})) {
		t.Error("IsNotFound did not unwrap a joined NotFoundError")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound(plain error) = true")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) = true")
	}
}

func checkValidation(t *testing.T, err error, wantField string) {
	t.Helper()
	if wantField == "" {
		if err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
		return
	}
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate() = %v, want ValidationError", err)
	}
	if ve.Field != wantField {
		t.Errorf("validation field = %q, want %q", ve.Field, wantField)
	}
}
