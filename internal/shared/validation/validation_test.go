package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestPasswordRules(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"abc", false},
		{"Abcdefg1!", true},
		{"abcdefg1!", false},
		{"Abcdefgh1", false},
		{"Abcdefghijklmno1!", false},
		{"A!cdefgh", true},
		{"Passw0rd[x", true},
	}
	for _, tc := range cases {
		err := Password("password", tc.value)
		if tc.ok && err != nil {
			t.Fatalf("expected %q accepted, got %v", tc.value, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("expected %q rejected", tc.value)
		}
	}
}

func TestNameLengthAndCharset(t *testing.T) {
	if err := Name("name", "Short Name"); err == nil {
		t.Fatal("expected 10-character name rejected")
	}
	if err := Name("name", "Alexandra Catherine Wood"); err != nil {
		t.Fatalf("expected 24-character name accepted, got %v", err)
	}
	twentyFive := "Jonathan Alexander Wright"
	if len(twentyFive) != 25 {
		t.Fatalf("fixture must be 25 characters, got %d", len(twentyFive))
	}
	if err := Name("name", twentyFive); err != nil {
		t.Fatalf("expected 25-character name accepted, got %v", err)
	}
	if err := Name("name", "Jonathan Alexander Wr1ght"); err == nil {
		t.Fatal("expected digits rejected")
	}
	if err := Name("name", strings.Repeat("a", 61)); err == nil {
		t.Fatal("expected 61-character name rejected")
	}
	if err := Name("name", strings.Repeat("a", 60)); err != nil {
		t.Fatalf("expected 60-character name accepted, got %v", err)
	}
}

func TestEmailAndAddress(t *testing.T) {
	if err := Email("email", "owner@store.com"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	for _, bad := range []string{"", "owner", "owner@store", "own er@store.com"} {
		if err := Email("email", bad); err == nil {
			t.Fatalf("expected %q rejected", bad)
		}
	}
	if err := Address("address", ""); err != nil {
		t.Fatalf("empty address is optional, got %v", err)
	}
	if err := Address("address", strings.Repeat("x", 401)); err == nil {
		t.Fatal("expected 401-character address rejected")
	}
}

func TestRatingValue(t *testing.T) {
	for _, bad := range []float64{0, 6, 2.5, -1} {
		v := bad
		if _, err := RatingValue("rating", &v); err == nil {
			t.Fatalf("expected %v rejected", bad)
		}
	}
	if _, err := RatingValue("rating", nil); err == nil {
		t.Fatal("expected missing rating rejected")
	}
	for want := 1; want <= 5; want++ {
		v := float64(want)
		got, err := RatingValue("rating", &v)
		if err != nil || got != want {
			t.Fatalf("expected %d accepted, got %d %v", want, got, err)
		}
	}
}

func TestCollectReturnsTypedErrors(t *testing.T) {
	if err := Collect(nil, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	err := Collect(Email("email", "x"), nil, Password("password", "abc"))
	var list Errors
	if !errors.As(err, &list) {
		t.Fatalf("expected Errors, got %T", err)
	}
	if len(list) != 2 || list[0].Field != "email" || list[1].Field != "password" {
		t.Fatalf("unexpected fields: %+v", list)
	}
}
