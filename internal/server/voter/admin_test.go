package voter

import (
	"testing"

	"github.com/dmitrijs2005/adminvote/internal/server/models"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAdminVoter_Supports(t *testing.T) {
	for _, env := range []string{"production", "staging", "dev", ""} {
		v := NewAdminVoter(env)

		assert.False(t, v.Supports("IS_IMPERSONATOR"), env)
		assert.True(t, v.Supports("ROLE_ADMIN"), env)
		assert.True(t, v.Supports("is_impersonator"), env)
		assert.True(t, v.Supports(""), env)
	}
}

func TestAdminVoter_Decide(t *testing.T) {
	var nilUser *models.User

	tests := []struct {
		name     string
		identity any
		env      string
		want     bool
	}{
		{name: "no identity", identity: nil, env: "production", want: false},
		{name: "no identity outside production", identity: nil, env: "staging", want: false},
		{name: "typed nil user", identity: nilUser, env: "staging", want: false},
		{name: "anonymous string", identity: "anon.", env: "staging", want: false},
		{name: "user value instead of pointer", identity: models.User{ID: 1, UserName: "Grafikart"}, env: "production", want: false},
		{name: "admin in production", identity: &models.User{ID: 1, UserName: "Grafikart"}, env: "production", want: true},
		{name: "wrong id in production", identity: &models.User{ID: 2, UserName: "Grafikart"}, env: "production", want: false},
		{name: "wrong id outside production", identity: &models.User{ID: 2, UserName: "Grafikart"}, env: "staging", want: true},
		{name: "other user outside production", identity: &models.User{ID: 1, UserName: "SomeoneElse"}, env: "staging", want: false},
		{name: "other user in production", identity: &models.User{ID: 1, UserName: "SomeoneElse"}, env: "production", want: false},
		{name: "user name is case sensitive", identity: &models.User{ID: 1, UserName: "grafikart"}, env: "staging", want: false},
		{name: "prod is not production", identity: &models.User{ID: 2, UserName: "Grafikart"}, env: "prod", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewAdminVoter(tt.env)
			assert.Equal(t, tt.want, v.Decide("ROLE_ADMIN", tt.identity))
			assert.Equal(t, tt.want, IsAdmin(tt.identity, tt.env))
		})
	}
}

func TestAdminVoter_ImplementsVoter(t *testing.T) {
	var _ Voter = NewAdminVoter("dev")
}

func TestIsAdmin_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		attribute := rapid.String().Draw(t, "attribute")
		env := rapid.SampledFrom([]string{"production", "staging", "dev", "prod", ""}).Draw(t, "env")
		present := rapid.Bool().Draw(t, "present")
		name := rapid.SampledFrom([]string{"Grafikart", "SomeoneElse", "", "grafikart"}).Draw(t, "username")
		id := rapid.Int64Range(-2, 3).Draw(t, "id")

		var identity any
		if present {
			identity = &models.User{ID: id, UserName: name}
		}

		v := NewAdminVoter(env)
		first := v.Decide(attribute, identity)
		for i := 0; i < 3; i++ {
			if got := v.Decide(attribute, identity); got != first {
				t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
			}
		}

		var want bool
		switch {
		case !present:
			want = false
		case env == "production":
			want = name == "Grafikart" && id == 1
		default:
			want = name == "Grafikart"
		}
		if first != want {
			t.Fatalf("Decide(%q, %+v) in %q = %v, want %v", attribute, identity, env, first, want)
		}

		if v.Supports(attribute) != (attribute != "IS_IMPERSONATOR") {
			t.Fatalf("Supports(%q) = %v", attribute, v.Supports(attribute))
		}
	})
}

func TestAdminVoter_ConcurrentDecide(t *testing.T) {
	v := NewAdminVoter("production")
	admin := &models.User{ID: 1, UserName: "Grafikart"}

	done := make(chan bool, 64)
	for i := 0; i < cap(done); i++ {
		go func() { done <- v.Decide("ROLE_ADMIN", admin) }()
	}
	for i := 0; i < cap(done); i++ {
		assert.True(t, <-done)
	}
}
