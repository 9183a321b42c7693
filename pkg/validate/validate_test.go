package validate_test

import (
	"testing"

	"github.com/kipngetich-lab/TukoShop-App/pkg/validate"
)

type signupInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,in=buyer,seller"`
	Website  string `json:"website"  validate:"nullable,url"`
}

type listingInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=200"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int64   `json:"quantity" validate:"gte=0,lte=100000"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "wanjiku_99",
		Password: "longenough",
		Role:     "seller",
		Website:  "", // nullable, allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	for _, field := range []string{"username", "password", "role"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "wanjiku",
		Password: "longenough",
		Role:     "admin",
	})
	if _, ok := errs["role"]; !ok {
		t.Errorf("expected role error, got: %v", errs)
	}
}

func TestAlphaDash(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "has spaces!",
		Password: "longenough",
		Role:     "buyer",
	})
	if _, ok := errs["username"]; !ok {
		t.Errorf("expected username error, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	errs := validate.Struct(listingInput{Name: "lamp", Price: -1, Quantity: 5})
	if _, ok := errs["price"]; !ok {
		t.Errorf("expected price error, got: %v", errs)
	}

	errs = validate.Struct(listingInput{Name: "lamp", Price: 10, Quantity: 200000})
	if _, ok := errs["quantity"]; !ok {
		t.Errorf("expected quantity error, got: %v", errs)
	}
}

func TestNullableURL(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "wanjiku",
		Password: "longenough",
		Role:     "buyer",
		Website:  "not a url",
	})
	if _, ok := errs["website"]; !ok {
		t.Errorf("expected website error, got: %v", errs)
	}
}

func TestPointerFieldsAreDereferenced(t *testing.T) {
	type patch struct {
		Name  *string  `json:"name"  validate:"nullable,min=2"`
		Price *float64 `json:"price" validate:"nullable,gte=0"`
	}

	if errs := validate.Struct(patch{}); validate.HasErrors(errs) {
		t.Errorf("nil pointers with nullable should pass, got: %v", errs)
	}

	bad := "x"
	neg := -5.0
	errs := validate.Struct(patch{Name: &bad, Price: &neg})
	if _, ok := errs["name"]; !ok {
		t.Errorf("expected name error, got: %v", errs)
	}
	if _, ok := errs["price"]; !ok {
		t.Errorf("expected price error, got: %v", errs)
	}
}
